package services

import (
	"context"
	"log"
	"strings"

	"ai_anchor_mini/internal/clients/ollama"
	"ai_anchor_mini/internal/config"
	"ai_anchor_mini/internal/models"
)

// OllamaLLM 基于Ollama的文本生成服务
type OllamaLLM struct {
	client *ollama.Client
	cfg    config.OllamaConfig
}

// NewOllamaLLM 创建Ollama生成服务
func NewOllamaLLM(cfg config.OllamaConfig) *OllamaLLM {
	return &OllamaLLM{
		client: ollama.NewClient(ollama.Config{
			Host:  cfg.Host,
			Model: cfg.Model,
		}),
		cfg: cfg,
	}
}

// Name 返回服务名称
func (s *OllamaLLM) Name() string {
	return "ollama_llm"
}

// Initialize 检查Ollama服务是否可达
func (s *OllamaLLM) Initialize(ctx context.Context) error {
	log.Println("正在初始化Ollama生成服务...")
	return s.client.Ping(ctx)
}

// Generate 根据历史消息和用户输入生成回复文本
func (s *OllamaLLM) Generate(ctx context.Context, text string, history []models.Message) (string, error) {
	system, prompt := buildPrompt(text, history)

	resp, err := s.client.Generate(ctx, system, prompt, ollama.Options{
		Temperature: s.cfg.Temperature,
		NumPredict:  s.cfg.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	return resp.Response, nil
}

// Shutdown 关闭服务
func (s *OllamaLLM) Shutdown(ctx context.Context) error {
	log.Println("Ollama生成服务已关闭")
	return nil
}

// buildPrompt 从历史记录和新输入构建提示词，系统消息单独返回
func buildPrompt(text string, history []models.Message) (system, prompt string) {
	var b strings.Builder
	for _, msg := range history {
		switch msg.Role {
		case "system":
			system = msg.Content
		case "user":
			b.WriteString("用户: " + msg.Content + "\n")
		case "assistant":
			b.WriteString("助手: " + msg.Content + "\n")
		}
	}
	b.WriteString("用户: " + text + "\n助手: ")
	return system, b.String()
}
