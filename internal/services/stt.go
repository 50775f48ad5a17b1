package services

import (
	"context"
	"log"

	"ai_anchor_mini/internal/clients/whisper"
	"ai_anchor_mini/internal/config"
)

// WhisperSTT 基于远程Whisper服务的语音识别
type WhisperSTT struct {
	client *whisper.Client
}

// NewWhisperSTT 创建Whisper识别服务
func NewWhisperSTT(cfg config.WhisperConfig) *WhisperSTT {
	return &WhisperSTT{
		client: whisper.NewClient(whisper.Config{
			ServerURL:  cfg.ServerURL,
			Language:   cfg.Language,
			SampleRate: cfg.SampleRate,
		}),
	}
}

// Name 返回服务名称
func (s *WhisperSTT) Name() string {
	return "whisper_stt"
}

// Initialize 检查识别服务是否可达
func (s *WhisperSTT) Initialize(ctx context.Context) error {
	log.Println("正在初始化Whisper识别服务...")
	return s.client.Health(ctx)
}

// Transcribe 将音频数据识别为文本
func (s *WhisperSTT) Transcribe(ctx context.Context, audio []byte) (string, error) {
	return s.client.Transcribe(ctx, audio)
}

// Shutdown 关闭服务
func (s *WhisperSTT) Shutdown(ctx context.Context) error {
	log.Println("Whisper识别服务已关闭")
	return nil
}
