// Package whisper 提供远程Whisper语音识别服务的HTTP客户端
package whisper

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Config Whisper客户端配置
type Config struct {
	ServerURL  string // 识别服务地址（完整URL）
	Language   string // 识别语种
	SampleRate int    // 采样率
}

// Client Whisper识别客户端
type Client struct {
	config Config
	client *http.Client
}

// TranscribeRequest 识别请求参数
type TranscribeRequest struct {
	AudioDataBase64 string `json:"audio_data_base64"`     // base64编码的音频数据
	Language        string `json:"language,omitempty"`    // 识别语种
	SampleRate      int    `json:"sample_rate,omitempty"` // 采样率
}

// TranscribeResponse 识别响应
type TranscribeResponse struct {
	Text     string  `json:"text"`               // 识别文本
	Language string  `json:"language,omitempty"` // 检测到的语种
	Duration float64 `json:"duration,omitempty"` // 音频时长(秒)
}

// NewClient 创建新的Whisper客户端
func NewClient(config Config) *Client {
	return &Client{
		config: config,
		client: &http.Client{},
	}
}

// Transcribe 将音频数据识别为文本
func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	reqBody := TranscribeRequest{
		AudioDataBase64: base64.StdEncoding.EncodeToString(audio),
		Language:        c.config.Language,
		SampleRate:      c.config.SampleRate,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("序列化请求失败: %w", err)
	}

	url := fmt.Sprintf("%s/v1/transcribe", c.config.ServerURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("发送请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("识别服务返回错误: %s", string(body))
	}

	var response TranscribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("解析响应失败: %w", err)
	}

	return response.Text, nil
}

// Health 检查识别服务是否就绪
func (c *Client) Health(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", c.config.ServerURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("创建请求失败: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("连接识别服务失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("识别服务返回状态码: %d", resp.StatusCode)
	}
	return nil
}
