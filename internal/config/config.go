// Package config 提供配置加载和管理功能
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var globalConfig *Config

// Config 应用程序配置结构
type Config struct {
	Server       ServerConfig    `yaml:"server"`
	WebSocket    WebSocketConfig `yaml:"websocket"`
	STT          STTConfig       `yaml:"stt"`
	LLM          LLMConfig       `yaml:"llm"`
	TTS          TTSConfig       `yaml:"tts"`
	SystemPrompt string          `yaml:"system_prompt"` // 对话系统提示词
}

// ServerConfig HTTP服务器配置
type ServerConfig struct {
	Host string `yaml:"host"` // 服务器监听地址
	Port int    `yaml:"port"` // 服务器监听端口
}

// WebSocketConfig WebSocket配置
type WebSocketConfig struct {
	ReadBufferSize  int           `yaml:"read_buffer_size"`  // 读缓冲区大小
	WriteBufferSize int           `yaml:"write_buffer_size"` // 写缓冲区大小
	MaxMessageSize  int64         `yaml:"max_message_size"`  // 单条消息大小上限
	PingPeriod      time.Duration `yaml:"ping_period"`       // 心跳间隔
	PongWait        time.Duration `yaml:"pong_wait"`         // 等待Pong响应的超时时间
}

// STTConfig 语音识别配置
type STTConfig struct {
	Type    string        `yaml:"type"`    // 服务类型：whisper
	Whisper WhisperConfig `yaml:"whisper"` // Whisper服务配置
}

// WhisperConfig Whisper识别服务配置
type WhisperConfig struct {
	ServerURL  string `yaml:"server_url"`  // 识别服务地址（完整URL）
	Language   string `yaml:"language"`    // 识别语种
	SampleRate int    `yaml:"sample_rate"` // 采样率
}

// LLMConfig 文本生成配置
type LLMConfig struct {
	Type   string       `yaml:"type"`   // 服务类型：ollama/openai_like
	Ollama OllamaConfig `yaml:"ollama"` // Ollama配置
	OpenAI OpenAIConfig `yaml:"openai"` // OpenAI兼容API配置
}

// OllamaConfig Ollama配置
type OllamaConfig struct {
	Host        string  `yaml:"host"`        // Ollama服务器地址
	Model       string  `yaml:"model"`       // 模型名称
	Temperature float64 `yaml:"temperature"` // 温度参数
	MaxTokens   int     `yaml:"max_tokens"`  // 最大生成token数
}

// OpenAIConfig OpenAI兼容API配置
type OpenAIConfig struct {
	APIKey      string  `yaml:"api_key"`      // API密钥
	APIBaseURL  string  `yaml:"api_base_url"` // API基础URL（DeepSeek或OpenAI）
	Model       string  `yaml:"model"`        // 模型名称
	Temperature float64 `yaml:"temperature"`  // 温度参数
	MaxTokens   int     `yaml:"max_tokens"`   // 最大生成token数
}

// TTSConfig 语音合成配置
type TTSConfig struct {
	Type      string          `yaml:"type"`       // 服务类型：gpt_sovits
	GPTSoVITS GPTSoVITSConfig `yaml:"gpt_sovits"` // GPT-SoVITS配置
}

// GPTSoVITSConfig GPT-SoVITS合成服务配置
type GPTSoVITSConfig struct {
	APIBaseURL     string        `yaml:"api_base_url"`    // API基础URL
	TextLanguage   string        `yaml:"text_language"`   // 合成文本语种
	RefAudioPath   string        `yaml:"ref_audio_path"`  // 参考音频路径
	PromptText     string        `yaml:"prompt_text"`     // 参考音频文本
	PromptLanguage string        `yaml:"prompt_language"` // 参考音频语种
	SpeedFactor    float64       `yaml:"speed_factor"`    // 语速
	AudioFormat    string        `yaml:"audio_format"`    // 输出音频格式
	Timeout        time.Duration `yaml:"timeout"`         // 合成请求超时时间
}

// GetConfig 获取全局配置实例
func GetConfig() *Config {
	return globalConfig
}

// Load 从文件加载配置
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	setDefaults(&config)

	// 验证配置
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("配置验证失败: %w", err)
	}

	// 设置全局配置
	globalConfig = &config

	return &config, nil
}

// setDefaults 设置默认值
func setDefaults(config *Config) {
	if config.WebSocket.ReadBufferSize == 0 {
		config.WebSocket.ReadBufferSize = 1024
	}
	if config.WebSocket.WriteBufferSize == 0 {
		config.WebSocket.WriteBufferSize = 1024
	}
	if config.WebSocket.MaxMessageSize == 0 {
		config.WebSocket.MaxMessageSize = 50 * 1024 * 1024 // 音频帧较大
	}
	if config.WebSocket.PingPeriod == 0 {
		config.WebSocket.PingPeriod = 30 * time.Second
	}
	if config.WebSocket.PongWait == 0 {
		config.WebSocket.PongWait = 60 * time.Second
	}
	if config.STT.Type == "" {
		config.STT.Type = "whisper"
	}
	if config.STT.Whisper.SampleRate == 0 {
		config.STT.Whisper.SampleRate = 16000
	}
	if config.STT.Whisper.Language == "" {
		config.STT.Whisper.Language = "zh"
	}
	if config.LLM.Type == "" {
		config.LLM.Type = "ollama"
	}
	if config.LLM.Ollama.Temperature == 0 {
		config.LLM.Ollama.Temperature = 0.7
	}
	if config.LLM.Ollama.MaxTokens == 0 {
		config.LLM.Ollama.MaxTokens = 2048
	}
	if config.LLM.OpenAI.APIBaseURL == "" {
		config.LLM.OpenAI.APIBaseURL = "https://api.deepseek.com/v1"
	}
	if config.LLM.OpenAI.Model == "" {
		config.LLM.OpenAI.Model = "deepseek-chat"
	}
	if config.LLM.OpenAI.Temperature == 0 {
		config.LLM.OpenAI.Temperature = 0.8
	}
	if config.LLM.OpenAI.MaxTokens == 0 {
		config.LLM.OpenAI.MaxTokens = 2000
	}
	if config.TTS.Type == "" {
		config.TTS.Type = "gpt_sovits"
	}
	if config.TTS.GPTSoVITS.APIBaseURL == "" {
		config.TTS.GPTSoVITS.APIBaseURL = "http://localhost:9880"
	}
	if config.TTS.GPTSoVITS.TextLanguage == "" {
		config.TTS.GPTSoVITS.TextLanguage = "zh"
	}
	if config.TTS.GPTSoVITS.PromptLanguage == "" {
		config.TTS.GPTSoVITS.PromptLanguage = "zh"
	}
	if config.TTS.GPTSoVITS.SpeedFactor == 0 {
		config.TTS.GPTSoVITS.SpeedFactor = 1.0
	}
	if config.TTS.GPTSoVITS.AudioFormat == "" {
		config.TTS.GPTSoVITS.AudioFormat = "wav"
	}
	if config.TTS.GPTSoVITS.Timeout == 0 {
		config.TTS.GPTSoVITS.Timeout = 50 * time.Second // 合成时间要久一点
	}
}

// validateConfig 验证配置是否有效
func validateConfig(config *Config) error {
	// 验证服务器配置
	if config.Server.Host == "" {
		return ErrEmptyServerHost
	}
	if config.Server.Port <= 0 {
		return ErrInvalidServerPort
	}

	// 验证STT配置
	switch config.STT.Type {
	case "whisper":
		if config.STT.Whisper.ServerURL == "" {
			return ErrEmptySTTServerURL
		}
	default:
		return fmt.Errorf("不支持的STT服务类型: %s", config.STT.Type)
	}

	// 验证LLM配置
	switch config.LLM.Type {
	case "ollama":
		if config.LLM.Ollama.Host == "" {
			return ErrEmptyOllamaHost
		}
		if config.LLM.Ollama.Model == "" {
			return ErrEmptyOllamaModel
		}
	case "openai_like":
		if config.LLM.OpenAI.APIKey == "" {
			return ErrEmptyAPIKey
		}
	default:
		return fmt.Errorf("不支持的LLM服务类型: %s", config.LLM.Type)
	}

	// 验证TTS配置
	if config.TTS.Type != "gpt_sovits" {
		return fmt.Errorf("不支持的TTS服务类型: %s", config.TTS.Type)
	}

	return nil
}
