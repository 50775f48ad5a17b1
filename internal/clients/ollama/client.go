// Package ollama 提供Ollama文本生成API的客户端
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Config Ollama客户端配置
type Config struct {
	Host  string // Ollama服务器地址（完整URL）
	Model string // 使用的模型名称
}

// Client Ollama客户端
type Client struct {
	config Config
	client *http.Client
}

// GenerateRequest 生成请求参数
type GenerateRequest struct {
	Model   string  `json:"model"`            // 模型名称
	Prompt  string  `json:"prompt"`           // 提示词
	System  string  `json:"system,omitempty"` // 系统提示词
	Stream  bool    `json:"stream"`           // 是否流式输出
	Options Options `json:"options,omitempty"`
}

// Options 生成选项
type Options struct {
	Temperature float64 `json:"temperature,omitempty"` // 温度参数
	TopP        float64 `json:"top_p,omitempty"`       // Top-p采样
	NumPredict  int     `json:"num_predict,omitempty"` // 最大生成token数
}

// GenerateResponse 生成响应
type GenerateResponse struct {
	Model     string `json:"model"`      // 模型名称
	CreatedAt string `json:"created_at"` // 创建时间
	Response  string `json:"response"`   // 生成的文本
	Done      bool   `json:"done"`       // 是否完成
}

// NewClient 创建新的Ollama客户端
func NewClient(config Config) *Client {
	return &Client{
		config: config,
		client: &http.Client{},
	}
}

// Generate 生成文本
func (c *Client) Generate(ctx context.Context, system, prompt string, options Options) (*GenerateResponse, error) {
	reqBody := GenerateRequest{
		Model:   c.config.Model,
		Prompt:  prompt,
		System:  system,
		Stream:  false,
		Options: options,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %w", err)
	}

	url := fmt.Sprintf("%s/api/generate", c.config.Host)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("服务器返回错误: %s", string(body))
	}

	var response GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("解析响应失败: %w", err)
	}

	return &response, nil
}

// Ping 检查Ollama服务是否可达
func (c *Client) Ping(ctx context.Context) error {
	url := fmt.Sprintf("%s/api/tags", c.config.Host)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("创建请求失败: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("连接Ollama服务失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Ollama服务返回状态码: %d", resp.StatusCode)
	}
	return nil
}
