package protocol

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		msgType   MessageType
		payload   map[string]interface{}
		requestID string
	}{
		{
			name:      "带request_id的文本输入",
			msgType:   MessageTypeTextInput,
			payload:   map[string]interface{}{"session_id": "s1", "text": "你好"},
			requestID: "req-1",
		},
		{
			name:      "不带request_id的音频输入",
			msgType:   MessageTypeAudioInput,
			payload:   map[string]interface{}{"session_id": "s2", "audio_data_base64": "AAAA"},
			requestID: "",
		},
		{
			name:      "空payload",
			msgType:   MessageTypeSystemStatus,
			payload:   nil,
			requestID: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.msgType, tt.payload, tt.requestID)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}

			env, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			if env.Type != tt.msgType {
				t.Errorf("类型不一致: got %s, want %s", env.Type, tt.msgType)
			}
			if env.RequestID != tt.requestID {
				t.Errorf("request_id不一致: got %q, want %q", env.RequestID, tt.requestID)
			}
			if env.Payload == nil {
				t.Fatal("payload不应为nil")
			}
			for k, v := range tt.payload {
				if env.Payload[k] != v {
					t.Errorf("payload[%s] = %v, want %v", k, env.Payload[k], v)
				}
			}
		})
	}
}

func TestEncodeOmitsEmptyRequestID(t *testing.T) {
	data, err := Encode(MessageTypeSystemStatus, map[string]interface{}{"message": "ok"}, "")
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if strings.Contains(string(data), "request_id") {
		t.Errorf("空request_id不应出现在编码结果中: %s", data)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("编码结果不是有效JSON: %v", err)
	}
	if _, ok := raw["type"]; !ok {
		t.Error("编码结果缺少type字段")
	}
	if _, ok := raw["payload"]; !ok {
		t.Error("编码结果缺少payload字段")
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"非JSON", "this is not json"},
		{"JSON数组", `[1, 2, 3]`},
		{"空字符串", ""},
		{"截断的JSON", `{"type": "text_input"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.input)); err == nil {
				t.Errorf("Decode(%q) 应该返回错误", tt.input)
			}
		})
	}
}

func TestDecodeDefaultsPayload(t *testing.T) {
	env, err := Decode([]byte(`{"type": "text_input"}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if env.Payload == nil {
		t.Error("缺省payload应为空map而不是nil")
	}
	if len(env.Payload) != 0 {
		t.Errorf("缺省payload应为空, got %v", env.Payload)
	}
}

func TestMessageTypeValid(t *testing.T) {
	valid := []MessageType{
		MessageTypeAudioInput, MessageTypeTextInput, MessageTypeMixedInput,
		MessageTypeAIResponse, MessageTypeSystemStatus, MessageTypeError,
	}
	for _, mt := range valid {
		if !mt.Valid() {
			t.Errorf("%s 应为有效类型", mt)
		}
	}

	for _, mt := range []MessageType{"", "unknown", "AUDIO_INPUT", "video_input"} {
		if mt.Valid() {
			t.Errorf("%q 不应为有效类型", mt)
		}
	}
}
