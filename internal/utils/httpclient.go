package utils

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const userAgent = "moovie-ingest/1.0 (+https://github.com/user/moovie-ingest)"

// HTTPClient JSON API 客户端
type HTTPClient struct {
	httpClient *http.Client
}

// NewHTTPClient 创建新的HTTP客户端，timeout 为 0 表示不超时
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &loggingTransport{next: http.DefaultTransport},
		},
	}
}

// loggingTransport 记录每个请求的方法、路径、状态码与耗时
// 只记录路径，查询参数里带有 apikey
type loggingTransport struct {
	next http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	latency := time.Since(start)
	if err != nil {
		log.Printf("[HTTP] %s %s%s 失败 %v: %v", req.Method, req.URL.Host, req.URL.Path, latency, err)
		return nil, err
	}
	log.Printf("[HTTP] %s %s%s %d %v", req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, latency)
	return resp, nil
}

// Get 发送GET请求
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	return c.httpClient.Do(req)
}

// GetJSON 发送GET请求，按响应编码解压后流式解析到 target
func (c *HTTPClient) GetJSON(ctx context.Context, url string, target any) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("请求失败，状态码: %d", resp.StatusCode)
	}

	body, err := decodedBody(resp)
	if err != nil {
		return err
	}
	defer body.Close()

	dec := json.NewDecoder(body)
	if err := dec.Decode(target); err != nil {
		log.Printf("[HTTP] 解析JSON失败: %s %s (偏移 %d, Content-Type=%s): %v",
			resp.Request.Method, resp.Request.URL.Path, dec.InputOffset(), resp.Header.Get("Content-Type"), err)
		return fmt.Errorf("解析JSON失败: %w", err)
	}
	return nil
}

// decodedBody 根据 Content-Encoding 包装响应体，未压缩时原样返回
func decodedBody(resp *http.Response) (io.ReadCloser, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("创建gzip读取器失败: %w", err)
		}
		return zr, nil
	case "deflate":
		return flate.NewReader(resp.Body), nil
	default:
		return io.NopCloser(resp.Body), nil
	}
}
