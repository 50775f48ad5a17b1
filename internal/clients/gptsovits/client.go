// Package gptsovits 提供GPT-SoVITS语音合成服务的HTTP客户端，适配api_v2接口
package gptsovits

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai_anchor_mini/internal/models"
)

// Config GPT-SoVITS客户端配置
type Config struct {
	APIBaseURL     string        // API基础URL
	TextLanguage   string        // 合成文本语种
	RefAudioPath   string        // 参考音频路径
	PromptText     string        // 参考音频文本
	PromptLanguage string        // 参考音频语种
	SpeedFactor    float64       // 语速
	AudioFormat    string        // 输出音频格式
	Timeout        time.Duration // 合成请求超时时间
}

// Client GPT-SoVITS合成客户端
type Client struct {
	config Config
	client *http.Client
}

// SynthesizeRequest 合成请求参数
type SynthesizeRequest struct {
	Text              string  `json:"text"`                 // 要合成的文本
	TextLang          string  `json:"text_lang"`            // 文本语种
	RefAudioPath      string  `json:"ref_audio_path"`       // 参考音频路径
	PromptLang        string  `json:"prompt_lang"`          // 参考音频语种
	PromptText        string  `json:"prompt_text"`          // 参考音频文本
	SpeedFactor       float64 `json:"speed_factor"`         // 语速
	TopK              int     `json:"top_k"`                // GPT参数
	TopP              float64 `json:"top_p"`                // GPT参数
	Temperature       float64 `json:"temperature"`          // GPT参数
	TextSplitMethod   string  `json:"text_split_method"`    // 文本分割方法
	BatchSize         int     `json:"batch_size"`           // 批大小
	RepetitionPenalty float64 `json:"repetition_penalty"`   // 重复惩罚
	MediaType         string  `json:"media_type,omitempty"` // 输出音频格式
}

// healthResponse /health接口的响应
type healthResponse struct {
	Ready bool `json:"ready"`
}

// NewClient 创建新的GPT-SoVITS客户端
func NewClient(config Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = 50 * time.Second // 合成时间要久一点
	}
	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// Synthesize 将文本合成为语音，返回base64编码的音频数据
func (c *Client) Synthesize(ctx context.Context, text string) (*models.TTSResult, error) {
	reqBody := SynthesizeRequest{
		Text:              text,
		TextLang:          c.config.TextLanguage,
		RefAudioPath:      c.config.RefAudioPath,
		PromptLang:        c.config.PromptLanguage,
		PromptText:        c.config.PromptText,
		SpeedFactor:       c.config.SpeedFactor,
		TopK:              5,
		TopP:              0.7,
		Temperature:       0.8,
		TextSplitMethod:   "cut5",
		BatchSize:         8,
		RepetitionPenalty: 1.35,
		MediaType:         c.config.AudioFormat,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %w", err)
	}

	url := fmt.Sprintf("%s/tts", c.config.APIBaseURL)

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
		return nil, fmt.Errorf("合成服务返回错误(状态码%d): %s", resp.StatusCode, string(body))
	}

	// 响应体就是音频字节流
	audioData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取音频数据失败: %w", err)
	}

	return &models.TTSResult{
		AudioData:   base64.StdEncoding.EncodeToString(audioData),
		AudioFormat: c.config.AudioFormat,
	}, nil
}

// Health 检查合成服务是否就绪
func (c *Client) Health(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", c.config.APIBaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("创建请求失败: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("连接合成服务失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("合成服务返回状态码: %d", resp.StatusCode)
	}

	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("解析健康检查响应失败: %w", err)
	}
	if !health.Ready {
		return fmt.Errorf("合成服务尚未就绪")
	}
	return nil
}
