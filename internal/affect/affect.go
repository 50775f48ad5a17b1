// Package affect 从生成文本中提取情感标签，并生成适合语音合成的干净文本
package affect

import (
	"regexp"
	"strings"
	"unicode"
)

// Emotion 情感分类
type Emotion string

const (
	EmotionCalm        Emotion = "calm"
	EmotionShy         Emotion = "shy"
	EmotionAngry       Emotion = "angry"
	EmotionSad         Emotion = "sad"
	EmotionSurprised   Emotion = "surprised"
	EmotionExcited     Emotion = "excited"
	EmotionEmbarrassed Emotion = "embarrassed"
	EmotionHappy       Emotion = "happy"
)

// knownEmotions 固定的情感标签集合
var knownEmotions = map[Emotion]bool{
	EmotionCalm:        true,
	EmotionShy:         true,
	EmotionAngry:       true,
	EmotionSad:         true,
	EmotionSurprised:   true,
	EmotionExcited:     true,
	EmotionEmbarrassed: true,
	EmotionHappy:       true,
}

// Result 情感提取结果
type Result struct {
	Emotion     Emotion // 情感分类
	DisplayText string  // 用于展示的回复文本
	TTSText     string  // 清洗后用于语音合成的文本
}

const separator = "|"

// Extract 解析 "happy | 正文" 形式的标签约定。
// 没有分隔符或标签无法识别时情感回落到 calm，任何输入都不会报错。
func Extract(raw string) Result {
	emotion := EmotionCalm
	display := raw

	if idx := strings.Index(raw, separator); idx >= 0 {
		label := strings.TrimSpace(raw[:idx])
		label = strings.Trim(label, "\"'“”‘’")
		display = strings.TrimSpace(raw[idx+len(separator):])
		if knownEmotions[Emotion(label)] {
			emotion = Emotion(label)
		}
		// 无法识别的标签直接丢弃，不拼回正文
	}

	return Result{
		Emotion:     emotion,
		DisplayText: display,
		TTSText:     CleanTTSText(display),
	}
}

// 预编译正则表达式模式
var (
	emoticonPattern = regexp.MustCompile(
		`[:;=\-][D)(|/\\oOpP]|` + // 西式颜文字 :) :( :D 等
			`<3|</3|>\.<|` + // 爱心和简单表情
			`\^[_\-o]\^`) // ^_^ ^-^ ^o^
	bracketPattern    = regexp.MustCompile(`[（(][^）)]*[）)]`) // 括号及其内容
	whitespacePattern = regexp.MustCompile(`\s+`)           // 多个空白字符
)

// 允许保留的标点符号
const allowedPunct = "，。！？、；：,.!?;:·…~"

// CleanTTSText 清洗语音合成文本：去除颜文字、括号内容、表情符号和其他符号，
// 保留各语种的文字和数字以及少量标点，并把连续空白压成单个空格。
func CleanTTSText(text string) string {
	cleaned := emoticonPattern.ReplaceAllString(text, "")
	cleaned = bracketPattern.ReplaceAllString(cleaned, "")

	var b strings.Builder
	for _, r := range cleaned {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsSpace(r):
			b.WriteRune(r)
		case strings.ContainsRune(allowedPunct, r):
			b.WriteRune(r)
		}
	}

	return strings.TrimSpace(whitespacePattern.ReplaceAllString(b.String(), " "))
}
