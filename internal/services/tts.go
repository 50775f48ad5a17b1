package services

import (
	"context"
	"log"

	"ai_anchor_mini/internal/clients/gptsovits"
	"ai_anchor_mini/internal/config"
	"ai_anchor_mini/internal/models"
)

// GPTSoVITSTTS 基于GPT-SoVITS的语音合成服务
type GPTSoVITSTTS struct {
	client *gptsovits.Client
}

// NewGPTSoVITSTTS 创建GPT-SoVITS合成服务
func NewGPTSoVITSTTS(cfg config.GPTSoVITSConfig) *GPTSoVITSTTS {
	return &GPTSoVITSTTS{
		client: gptsovits.NewClient(gptsovits.Config{
			APIBaseURL:     cfg.APIBaseURL,
			TextLanguage:   cfg.TextLanguage,
			RefAudioPath:   cfg.RefAudioPath,
			PromptText:     cfg.PromptText,
			PromptLanguage: cfg.PromptLanguage,
			SpeedFactor:    cfg.SpeedFactor,
			AudioFormat:    cfg.AudioFormat,
			Timeout:        cfg.Timeout,
		}),
	}
}

// Name 返回服务名称
func (s *GPTSoVITSTTS) Name() string {
	return "gptsovits_tts"
}

// Initialize 检查合成服务是否就绪
func (s *GPTSoVITSTTS) Initialize(ctx context.Context) error {
	log.Println("正在初始化GPT-SoVITS合成服务...")
	return s.client.Health(ctx)
}

// Synthesize 将文本合成为语音
func (s *GPTSoVITSTTS) Synthesize(ctx context.Context, text string) (*models.TTSResult, error) {
	return s.client.Synthesize(ctx, text)
}

// Shutdown 关闭服务
func (s *GPTSoVITSTTS) Shutdown(ctx context.Context) error {
	log.Println("GPT-SoVITS合成服务已关闭")
	return nil
}
