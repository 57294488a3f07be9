package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/user/moovie-ingest/internal/model"
	"github.com/user/moovie-ingest/internal/utils"
)

// SearchSource 分页搜索数据源
type SearchSource interface {
	// Search 请求第一页
	Search(ctx context.Context, query string) (*model.SearchPage, error)

	// Next 请求 links.next 指向的下一页
	Next(ctx context.Context, link string) (*model.SearchPage, error)
}

// RottenTomatoesClient 烂番茄电影搜索 API
type RottenTomatoesClient struct {
	http      *utils.HTTPClient
	baseURL   string
	apiKey    string
	pageLimit int
}

// NewRottenTomatoesClient 创建烂番茄客户端
func NewRottenTomatoesClient(client *utils.HTTPClient, baseURL, apiKey string, pageLimit int) *RottenTomatoesClient {
	if pageLimit <= 0 {
		pageLimit = 50
	}
	return &RottenTomatoesClient{
		http:      client,
		baseURL:   baseURL,
		apiKey:    apiKey,
		pageLimit: pageLimit,
	}
}

// Search 搜索电影，返回第一页
func (c *RottenTomatoesClient) Search(ctx context.Context, query string) (*model.SearchPage, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("page_limit", strconv.Itoa(c.pageLimit))
	params.Set("page", "1")
	params.Set("apikey", c.apiKey)

	var page model.SearchPage
	if err := c.http.GetJSON(ctx, c.baseURL+"?"+params.Encode(), &page); err != nil {
		return nil, fmt.Errorf("搜索 %q 失败: %w", query, err)
	}
	return &page, nil
}

// Next 请求下一页，链接中不带 apikey，需要补上
func (c *RottenTomatoesClient) Next(ctx context.Context, link string) (*model.SearchPage, error) {
	u, err := url.Parse(link)
	if err != nil {
		return nil, fmt.Errorf("无效的分页链接 %q: %w", link, err)
	}
	q := u.Query()
	q.Set("apikey", c.apiKey)
	u.RawQuery = q.Encode()

	var page model.SearchPage
	if err := c.http.GetJSON(ctx, u.String(), &page); err != nil {
		return nil, fmt.Errorf("请求分页 %q 失败: %w", link, err)
	}
	return &page, nil
}
