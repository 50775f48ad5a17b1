package config

import "errors"

// 配置相关错误
var (
	ErrEmptyServerHost   = errors.New("服务器地址不能为空")
	ErrInvalidServerPort = errors.New("服务器端口必须大于0")
	ErrEmptySTTServerURL = errors.New("STT服务地址不能为空")
	ErrEmptyOllamaHost   = errors.New("Ollama服务器地址不能为空")
	ErrEmptyOllamaModel  = errors.New("Ollama模型名称不能为空")
	ErrEmptyAPIKey       = errors.New("OpenAI兼容API密钥不能为空")
)
