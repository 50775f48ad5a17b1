package services

import (
	"fmt"

	"ai_anchor_mini/internal/config"
)

// NewRegistryFromConfig 根据配置装配处理服务。后端选择在构造期完成，
// 不支持的类型是启动错误。
func NewRegistryFromConfig(cfg *config.Config) (*Registry, error) {
	r := NewRegistry()

	switch cfg.STT.Type {
	case "whisper":
		r.Register(StageSTT, NewWhisperSTT(cfg.STT.Whisper))
	default:
		return nil, fmt.Errorf("不支持的STT服务类型: %s", cfg.STT.Type)
	}

	switch cfg.LLM.Type {
	case "ollama":
		r.Register(StageLLM, NewOllamaLLM(cfg.LLM.Ollama))
	case "openai_like":
		r.Register(StageLLM, NewOpenAILLM(cfg.LLM.OpenAI))
	default:
		return nil, fmt.Errorf("不支持的LLM服务类型: %s", cfg.LLM.Type)
	}

	switch cfg.TTS.Type {
	case "gpt_sovits":
		r.Register(StageTTS, NewGPTSoVITSTTS(cfg.TTS.GPTSoVITS))
	default:
		return nil, fmt.Errorf("不支持的TTS服务类型: %s", cfg.TTS.Type)
	}

	return r, nil
}
