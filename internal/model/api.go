package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexString 兼容 JSON 字符串与数字的字段（烂番茄的 id/runtime 等字段类型不固定）
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch val := v.(type) {
	case string:
		*f = FlexString(val)
	case json.Number:
		*f = FlexString(val.String())
	case bool:
		*f = FlexString(strconv.FormatBool(val))
	default:
		return fmt.Errorf("不支持的字段类型: %s", data)
	}
	return nil
}

func (f FlexString) String() string { return string(f) }

// SearchPage 烂番茄搜索接口的一页结果
type SearchPage struct {
	Total  int           `json:"total"`
	Movies []SearchMovie `json:"movies"`
	Links  PageLinks     `json:"links"`
}

// PageLinks 分页链接
type PageLinks struct {
	Self string `json:"self"`
	Next string `json:"next"`
	Prev string `json:"prev"`
}

// SearchMovie 搜索结果中的单部电影
type SearchMovie struct {
	ID           FlexString        `json:"id"`
	Title        string            `json:"title"`
	Year         FlexString        `json:"year"`
	MPAARating   string            `json:"mpaa_rating"`
	Runtime      FlexString        `json:"runtime"`
	ReleaseDates map[string]string `json:"release_dates"`
	AbridgedCast []CastMember      `json:"abridged_cast"`
	AlternateIDs map[string]string `json:"alternate_ids"`
}

// IMDbID 返回 alternate_ids 中的 IMDb 编号（不含 tt 前缀）
func (m SearchMovie) IMDbID() (string, bool) {
	id, ok := m.AlternateIDs["imdb"]
	return id, ok && id != ""
}

// CastMember 简略演员表条目
type CastMember struct {
	Name       string     `json:"name"`
	ID         FlexString `json:"id"`
	Characters []string   `json:"characters"`
}

// OMDbRecord OMDb 详情，人物与类型均为逗号分隔的字符串
type OMDbRecord struct {
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Rated    string `json:"Rated"`
	Released string `json:"Released"`
	Runtime  string `json:"Runtime"`
	Genre    string `json:"Genre"`
	Director string `json:"Director"`
	Writer   string `json:"Writer"`
	Actors   string `json:"Actors"`
	IMDbID   string `json:"imdbID"`
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// Found OMDb 是否找到了该条目
func (r *OMDbRecord) Found() bool {
	return r != nil && r.Response == "True"
}
