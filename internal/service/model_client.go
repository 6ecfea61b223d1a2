package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ModelClient 外部评测模型服务的统一 JSON 客户端。
// 各评测服务只是转发方，不解释业务载荷，统一用 map 透传
type ModelClient struct {
	client *http.Client
}

func NewModelClient() *ModelClient {
	return &ModelClient{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *ModelClient) Post(ctx context.Context, url string, payload interface{}) (map[string]interface{}, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *ModelClient) Get(ctx context.Context, url string) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *ModelClient) do(req *http.Request) (map[string]interface{}, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model service unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("model service error (status %d): %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("invalid JSON from model service: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("model service error (status %d): %s", resp.StatusCode, upstreamErrorMessage(data, body))
	}
	return data, nil
}

// upstreamErrorMessage 提取 FastAPI 风格的 detail 或 Flask 风格的 error 字段
func upstreamErrorMessage(data map[string]interface{}, body []byte) string {
	for _, key := range []string{"detail", "error", "message"} {
		if v, ok := data[key].(string); ok && v != "" {
			return v
		}
	}
	return string(body)
}
