package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"time"

	"ai_anchor_mini/internal/affect"
	"ai_anchor_mini/internal/protocol"
)

// defaultTTSTimeout 语音合成阶段的超时时间。识别和生成阶段不设超时。
const defaultTTSTimeout = 50 * time.Second

// Broker 服务协调器，在WebSocket连接和处理服务之间路由消息。
// 每条入站消息独立处理：校验、按消息类型分发到对应流水线、
// 按序调用各阶段服务、组装并下发单条响应。
type Broker struct {
	registry   *Registry
	sessions   *SessionStore
	conns      *ConnRegistry
	ttsTimeout time.Duration
}

// NewBroker 创建服务协调器
func NewBroker(registry *Registry, sessions *SessionStore, conns *ConnRegistry) *Broker {
	return &Broker{
		registry:   registry,
		sessions:   sessions,
		conns:      conns,
		ttsTimeout: defaultTTSTimeout,
	}
}

// Sessions 返回协调器持有的会话存储
func (b *Broker) Sessions() *SessionStore {
	return b.sessions
}

// HandleMessage 处理从客户端收到的一条消息。调用方保证同一连接上的消息
// 串行进入本方法，因此对单个连接的响应顺序与请求顺序一致。
func (b *Broker) HandleMessage(ctx context.Context, connID string, raw []byte) {
	env, err := protocol.Decode(raw)
	if err != nil {
		// 无法解析时request_id也无从得知
		log.Printf("解析消息失败 (连接 %s): %v", connID, err)
		b.sendError(connID, "Invalid message format", "")
		return
	}

	if !env.Type.Valid() {
		log.Printf("收到未知的消息类型 (连接 %s): %s", connID, env.Type)
		b.sendError(connID, fmt.Sprintf("Unknown message type: %s", env.Type), env.RequestID)
		return
	}

	sessionID, _ := env.Payload["session_id"].(string)
	if sessionID == "" {
		log.Printf("消息缺少session_id (连接 %s, 类型 %s)", connID, env.Type)
		b.sendError(connID, "Missing session_id, no response for this request", env.RequestID)
		return
	}

	switch env.Type {
	case protocol.MessageTypeAudioInput:
		b.processAudioPipeline(ctx, connID, sessionID, env.RequestID, env.Payload)
	case protocol.MessageTypeTextInput:
		b.processTextPipeline(ctx, connID, sessionID, env.RequestID, env.Payload)
	case protocol.MessageTypeMixedInput:
		b.processMixedInput(connID, env.RequestID, env.Payload)
	default:
		log.Printf("收到无法处理的消息类型 (连接 %s): %s", connID, env.Type)
		b.sendError(connID, fmt.Sprintf("Unhandled message type: %s", env.Type), env.RequestID)
	}
}

// processAudioPipeline 完整的音频处理流程：STT -> LLM -> 情感提取 -> TTS -> AI_RESPONSE
func (b *Broker) processAudioPipeline(ctx context.Context, connID, sessionID, requestID string, payload map[string]interface{}) {
	audioBase64, _ := payload["audio_data_base64"].(string)
	if audioBase64 == "" {
		log.Printf("audio_input缺少audio_data_base64 (请求 %s)", requestID)
		b.sendError(connID, "Missing audio_data_base64", requestID)
		return
	}

	audioBytes, err := base64.StdEncoding.DecodeString(audioBase64)
	if err != nil {
		log.Printf("解码base64音频数据失败 (请求 %s): %v", requestID, err)
		b.sendError(connID, "Invalid base64 audio data", requestID)
		return
	}

	stt, err := b.registry.STT()
	if err != nil {
		b.failPipeline(connID, requestID, newStageError(StageSTT, err))
		return
	}

	recognizedText, err := stt.Transcribe(ctx, audioBytes)
	if err != nil {
		b.failPipeline(connID, requestID, newStageError(StageSTT, err))
		return
	}
	log.Printf("识别结果: %q (请求 %s)", recognizedText, requestID)

	b.finishPipeline(ctx, connID, sessionID, requestID, recognizedText)
}

// processTextPipeline 文本输入处理流程：LLM -> 情感提取 -> TTS -> AI_RESPONSE
func (b *Broker) processTextPipeline(ctx context.Context, connID, sessionID, requestID string, payload map[string]interface{}) {
	userText, _ := payload["text"].(string)
	if userText == "" {
		log.Printf("text_input缺少text (请求 %s)", requestID)
		b.sendError(connID, "Missing text in payload", requestID)
		return
	}

	b.finishPipeline(ctx, connID, sessionID, requestID, userText)
}

// finishPipeline 执行流水线的公共后半段：生成、历史更新、情感提取、合成、响应组装。
// userText 是用户直接输入或STT识别出的文本。
func (b *Broker) finishPipeline(ctx context.Context, connID, sessionID, requestID, userText string) {
	llm, err := b.registry.LLM()
	if err != nil {
		b.failPipeline(connID, requestID, newStageError(StageLLM, err))
		return
	}

	history := b.sessions.History(sessionID)
	replyText, err := llm.Generate(ctx, userText, history)
	if err != nil {
		// 生成失败时不追加任何历史
		b.failPipeline(connID, requestID, newStageError(StageLLM, err))
		return
	}
	log.Printf("生成回复: %q (请求 %s)", replyText, requestID)

	// 生成成功后立即追加本轮交互：先用户消息，后助手消息
	b.sessions.AppendExchange(sessionID, userText, replyText)

	result := affect.Extract(replyText)

	tts, err := b.registry.TTS()
	if err != nil {
		b.failPipeline(connID, requestID, newStageError(StageTTS, err))
		return
	}

	ttsCtx, cancel := context.WithTimeout(ctx, b.ttsTimeout)
	defer cancel()

	audio, err := tts.Synthesize(ttsCtx, result.TTSText)
	if err != nil {
		b.failPipeline(connID, requestID, newStageError(StageTTS, err))
		return
	}
	log.Printf("合成完成，格式: %s (请求 %s)", audio.AudioFormat, requestID)

	b.sendToClient(connID, protocol.MessageTypeAIResponse, map[string]interface{}{
		"emotion": string(result.Emotion),
		"text":    result.DisplayText,
		"audio": map[string]interface{}{
			"audio_data":   audio.AudioData,
			"audio_format": audio.AudioFormat,
		},
		"recognized_text": userText,
	}, requestID)
}

// processMixedInput 混合输入尚未实现，返回固定的占位响应而不是错误，
// 让客户端能区分"功能未实现"和"处理失败"。
func (b *Broker) processMixedInput(connID, requestID string, payload map[string]interface{}) {
	log.Printf("收到mixed_input (请求 %s)，处理功能尚未实现", requestID)

	text, _ := payload["text"].(string)
	b.sendToClient(connID, protocol.MessageTypeAIResponse, map[string]interface{}{
		"text":            "混合输入处理功能尚未实现。",
		"audio":           nil,
		"emotion":         nil,
		"recognized_text": text,
	}, requestID)
}

// failPipeline 记录阶段错误并向客户端发送单条错误响应。
// 阶段细节只进服务端日志，不回传给客户端。
func (b *Broker) failPipeline(connID, requestID string, stageErr *StageError) {
	log.Printf("流水线处理失败 (请求 %s): %v", requestID, stageErr)

	var message string
	switch stageErr.Stage {
	case StageSTT:
		message = "Error in audio recognition"
	case StageLLM:
		message = "Error in response generation"
	case StageTTS:
		message = "Error in speech synthesis"
	default:
		message = "Internal server error"
	}
	b.sendError(connID, message, requestID)
}

// sendToClient 向指定连接发送消息
func (b *Broker) sendToClient(connID string, msgType protocol.MessageType, payload map[string]interface{}, requestID string) {
	data, err := protocol.Encode(msgType, payload, requestID)
	if err != nil {
		log.Printf("编码消息失败 (连接 %s): %v", connID, err)
		return
	}
	if err := b.conns.Send(connID, data); err != nil {
		log.Printf("发送消息失败 (连接 %s): %v", connID, err)
	}
}

// sendError 向客户端发送错误消息
func (b *Broker) sendError(connID, message, requestID string) {
	b.sendToClient(connID, protocol.MessageTypeError, map[string]interface{}{
		"message": message,
		"code":    "INTERNAL_ERROR",
	}, requestID)
}
