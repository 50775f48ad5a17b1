// Package protocol 定义WebSocket消息协议
package protocol

import (
	"encoding/json"
	"fmt"
)

// MessageType 消息类型
type MessageType string

const (
	// 客户端输入
	MessageTypeAudioInput MessageType = "audio_input" // 客户端发送的音频数据
	MessageTypeTextInput  MessageType = "text_input"  // 客户端发送的文本数据
	MessageTypeMixedInput MessageType = "mixed_input" // 客户端发送的混合输入

	// 服务端输出
	MessageTypeAIResponse MessageType = "ai_response" // 后端生成的回复：文本 + 音频 + 情感分类

	// 系统消息
	MessageTypeSystemStatus MessageType = "system_status" // 系统状态消息
	MessageTypeError        MessageType = "error"         // 错误消息
)

// Valid 检查消息类型是否在已知集合内
func (t MessageType) Valid() bool {
	switch t {
	case MessageTypeAudioInput, MessageTypeTextInput, MessageTypeMixedInput,
		MessageTypeAIResponse, MessageTypeSystemStatus, MessageTypeError:
		return true
	}
	return false
}

// Envelope 标准消息信封
type Envelope struct {
	Type      MessageType            `json:"type"`                 // 消息类型
	Payload   map[string]interface{} `json:"payload"`              // 消息内容
	RequestID string                 `json:"request_id,omitempty"` // 可选的请求ID，用于跟踪请求响应
}

// Encode 构造标准格式的消息帧
func Encode(msgType MessageType, payload map[string]interface{}, requestID string) ([]byte, error) {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	data, err := json.Marshal(Envelope{
		Type:      msgType,
		Payload:   payload,
		RequestID: requestID,
	})
	if err != nil {
		return nil, fmt.Errorf("序列化消息失败: %w", err)
	}
	return data, nil
}

// Decode 解析消息帧。只做结构校验，不做语义校验。
func Decode(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("无效的JSON消息: %w", err)
	}
	if env.Payload == nil {
		env.Payload = map[string]interface{}{}
	}
	return &env, nil
}
