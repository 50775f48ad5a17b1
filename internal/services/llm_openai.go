package services

import (
	"context"
	"fmt"
	"log"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"ai_anchor_mini/internal/config"
	"ai_anchor_mini/internal/models"
)

// OpenAILLM 基于OpenAI兼容API（OpenAI/DeepSeek等）的文本生成服务
type OpenAILLM struct {
	client openai.Client
	cfg    config.OpenAIConfig
}

// NewOpenAILLM 创建OpenAI兼容生成服务
func NewOpenAILLM(cfg config.OpenAIConfig) *OpenAILLM {
	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.APIBaseURL),
	)
	return &OpenAILLM{
		client: client,
		cfg:    cfg,
	}
}

// Name 返回服务名称
func (s *OpenAILLM) Name() string {
	return "openai_llm"
}

// Initialize 测试API连接
func (s *OpenAILLM) Initialize(ctx context.Context) error {
	log.Printf("正在初始化LLM服务，模型: %s...", s.cfg.Model)

	if _, err := s.client.Models.List(ctx); err != nil {
		return fmt.Errorf("连接LLM API失败，请检查api_key和api_base_url: %w", err)
	}
	log.Println("LLM API连接成功")
	return nil
}

// Generate 根据历史消息和用户输入生成回复文本
func (s *OpenAILLM) Generate(ctx context.Context, text string, history []models.Message) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	for _, msg := range history {
		switch msg.Role {
		case "system":
			messages = append(messages, openai.SystemMessage(msg.Content))
		case "user":
			messages = append(messages, openai.UserMessage(msg.Content))
		case "assistant":
			messages = append(messages, openai.AssistantMessage(msg.Content))
		}
	}
	messages = append(messages, openai.UserMessage(text))

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               openai.ChatModel(s.cfg.Model),
		Temperature:         openai.Float(s.cfg.Temperature),
		MaxCompletionTokens: openai.Int(int64(s.cfg.MaxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("调用LLM API失败: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("LLM API未返回任何结果")
	}
	return resp.Choices[0].Message.Content, nil
}

// Shutdown 关闭服务
func (s *OpenAILLM) Shutdown(ctx context.Context) error {
	log.Println("LLM服务已关闭")
	return nil
}
