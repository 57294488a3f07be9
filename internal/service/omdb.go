package service

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"github.com/user/moovie-ingest/internal/model"
	"github.com/user/moovie-ingest/internal/utils"
)

// DetailSource 按 IMDb ID 查询详情的数据源
type DetailSource interface {
	// Lookup 查询详情，未找到时返回 nil, nil
	Lookup(ctx context.Context, imdbID string) (*model.OMDbRecord, error)
}

// OMDbClient OMDb 详情 API
type OMDbClient struct {
	http    *utils.HTTPClient
	baseURL string
	apiKey  string
}

func NewOMDbClient(client *utils.HTTPClient, baseURL, apiKey string) *OMDbClient {
	return &OMDbClient{http: client, baseURL: baseURL, apiKey: apiKey}
}

// Lookup 查询 IMDb 条目，imdbID 不带 tt 前缀
func (c *OMDbClient) Lookup(ctx context.Context, imdbID string) (*model.OMDbRecord, error) {
	params := url.Values{}
	params.Set("i", "tt"+imdbID)
	params.Set("r", "json")
	if c.apiKey != "" {
		params.Set("apikey", c.apiKey)
	}

	var record model.OMDbRecord
	if err := c.http.GetJSON(ctx, c.baseURL+"?"+params.Encode(), &record); err != nil {
		return nil, fmt.Errorf("查询 OMDb 条目 tt%s 失败: %w", imdbID, err)
	}
	if !record.Found() {
		log.Printf("[OMDb] 未找到条目: %s (%s)", imdbID, record.Error)
		return nil, nil
	}
	return &record, nil
}
