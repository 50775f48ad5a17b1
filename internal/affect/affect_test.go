package affect

import (
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantEmotion Emotion
		wantDisplay string
	}{
		{
			name:        "带已知标签",
			input:       "happy | 今天天气真好！",
			wantEmotion: EmotionHappy,
			wantDisplay: "今天天气真好！",
		},
		{
			name:        "没有分隔符",
			input:       "这是一句没有标签的话",
			wantEmotion: EmotionCalm,
			wantDisplay: "这是一句没有标签的话",
		},
		{
			name:        "未知标签被丢弃",
			input:       "unknown_tag | hello",
			wantEmotion: EmotionCalm,
			wantDisplay: "hello",
		},
		{
			name:        "带引号的标签",
			input:       `"sad" | 呜呜呜`,
			wantEmotion: EmotionSad,
			wantDisplay: "呜呜呜",
		},
		{
			name:        "标签大小写敏感",
			input:       "Happy | hi",
			wantEmotion: EmotionCalm,
			wantDisplay: "hi",
		},
		{
			name:        "只在第一个分隔符处拆分",
			input:       "excited | a | b",
			wantEmotion: EmotionExcited,
			wantDisplay: "a | b",
		},
		{
			name:        "空输入",
			input:       "",
			wantEmotion: EmotionCalm,
			wantDisplay: "",
		},
		{
			name:        "只有分隔符",
			input:       "|",
			wantEmotion: EmotionCalm,
			wantDisplay: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.input)
			if got.Emotion != tt.wantEmotion {
				t.Errorf("Emotion = %s, want %s", got.Emotion, tt.wantEmotion)
			}
			if got.DisplayText != tt.wantDisplay {
				t.Errorf("DisplayText = %q, want %q", got.DisplayText, tt.wantDisplay)
			}
		})
	}
}

func TestCleanTTSText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "去除表情和括号内容并压缩空白",
			input: "你好😊（小声说）世界\n\t！",
			want:  "你好世界 ！",
		},
		{
			name:  "去除西式颜文字",
			input: "好开心 :) 真的",
			want:  "好开心 真的",
		},
		{
			name:  "去除半角括号内容",
			input: "hello (whisper) world",
			want:  "hello world",
		},
		{
			name:  "保留中英文和常见标点",
			input: "今天是2024年，天气 very good！",
			want:  "今天是2024年，天气 very good！",
		},
		{
			name:  "去除markdown符号",
			input: "**重点** `代码`",
			want:  "重点 代码",
		},
		{
			name:  "多行压成单行",
			input: "第一行\n第二行\r\n第三行",
			want:  "第一行 第二行 第三行",
		},
		{
			name:  "空输入",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanTTSText(tt.input)
			if got != tt.want {
				t.Errorf("CleanTTSText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractNeverPanics(t *testing.T) {
	inputs := []string{
		"", "|", "||", " | ", "happy|", "|happy",
		strings.Repeat("|", 100),
		"😊😊😊", "\x00\x01\x02",
	}
	for _, in := range inputs {
		got := Extract(in)
		if got.Emotion == "" {
			t.Errorf("Extract(%q) 情感不应为空", in)
		}
	}
}
