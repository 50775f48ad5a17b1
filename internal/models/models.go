// Package models 定义核心数据模型和处理服务接口
package models

import "context"

// Message 对话消息
type Message struct {
	Role    string `json:"role"`    // 消息角色：system/user/assistant
	Content string `json:"content"` // 消息内容
}

// TTSResult 语音合成结果
type TTSResult struct {
	AudioData   string `json:"audio_data"`   // base64编码的音频数据
	AudioFormat string `json:"audio_format"` // 音频格式：wav/mp3等
}

// Service 所有处理服务的通用生命周期接口
type Service interface {
	// Name 返回服务名称，用于日志
	Name() string

	// Initialize 初始化服务，例如加载模型、连接外部API等
	Initialize(ctx context.Context) error

	// Shutdown 关闭服务，释放资源
	Shutdown(ctx context.Context) error
}

// STTService 语音识别服务接口
type STTService interface {
	Service

	// Transcribe 将音频数据识别为文本
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// LLMService 文本生成服务接口
type LLMService interface {
	Service

	// Generate 根据历史消息和用户输入生成回复文本
	Generate(ctx context.Context, text string, history []Message) (string, error)
}

// TTSService 语音合成服务接口
type TTSService interface {
	Service

	// Synthesize 将文本合成为语音
	Synthesize(ctx context.Context, text string) (*TTSResult, error)
}
