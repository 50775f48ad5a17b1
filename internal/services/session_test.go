package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStoreLazyCreate(t *testing.T) {
	s := NewSessionStore("")

	assert.Equal(t, 0, s.Count())
	history := s.History("s1")
	assert.Empty(t, history)
	assert.Equal(t, 1, s.Count())
}

func TestSessionStoreSystemPrompt(t *testing.T) {
	s := NewSessionStore("你是虚拟主播小田")

	history := s.History("s1")
	assert.Len(t, history, 1)
	assert.Equal(t, "system", history[0].Role)
	assert.Equal(t, "你是虚拟主播小田", history[0].Content)

	// 系统消息只出现一次
	s.AppendExchange("s1", "你好", "你好呀")
	history = s.History("s1")
	assert.Len(t, history, 3)
	assert.Equal(t, "system", history[0].Role)
	assert.Equal(t, "user", history[1].Role)
	assert.Equal(t, "assistant", history[2].Role)
}

func TestSessionStoreAppendOrder(t *testing.T) {
	s := NewSessionStore("")

	s.AppendExchange("s1", "第一个问题", "第一个回答")
	s.AppendExchange("s1", "第二个问题", "第二个回答")

	history := s.History("s1")
	assert.Len(t, history, 4)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "第一个问题", history[0].Content)
	assert.Equal(t, "assistant", history[1].Role)
	assert.Equal(t, "第一个回答", history[1].Content)
	assert.Equal(t, "user", history[2].Role)
	assert.Equal(t, "第二个问题", history[2].Content)
	assert.Equal(t, "assistant", history[3].Role)
	assert.Equal(t, "第二个回答", history[3].Content)
}

func TestSessionStoreClear(t *testing.T) {
	s := NewSessionStore("系统提示")
	s.AppendExchange("s1", "问", "答")

	s.Clear("s1")
	history := s.History("s1")
	assert.Len(t, history, 1)
	assert.Equal(t, "system", history[0].Role)

	// 无系统提示时清空后为空
	s2 := NewSessionStore("")
	s2.AppendExchange("s1", "问", "答")
	s2.Clear("s1")
	assert.Empty(t, s2.History("s1"))
}

func TestSessionStoreHistoryReturnsCopy(t *testing.T) {
	s := NewSessionStore("")
	s.AppendExchange("s1", "问", "答")

	history := s.History("s1")
	history[0].Content = "被篡改"

	assert.Equal(t, "问", s.History("s1")[0].Content)
}

func TestSessionStoreConcurrentSessionsIsolated(t *testing.T) {
	s := NewSessionStore("")
	const rounds = 50

	var wg sync.WaitGroup
	for _, sessionID := range []string{"sa", "sb"} {
		sessionID := sessionID
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				s.AppendExchange(sessionID,
					fmt.Sprintf("%s-问-%d", sessionID, i),
					fmt.Sprintf("%s-答-%d", sessionID, i))
			}
		}()
	}
	wg.Wait()

	// 两个会话的历史互不污染
	for _, sessionID := range []string{"sa", "sb"} {
		history := s.History(sessionID)
		assert.Len(t, history, rounds*2)
		for _, msg := range history {
			assert.Contains(t, msg.Content, sessionID+"-")
		}
	}
}

func TestSessionStoreSharedSessionNoInterleaveWithinExchange(t *testing.T) {
	s := NewSessionStore("")
	const rounds = 50

	var wg sync.WaitGroup
	for g := 0; g < 2; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				s.AppendExchange("shared", "问", "答")
			}
		}()
	}
	wg.Wait()

	// 同一session_id并发写入时，单次交互内部不会交错
	history := s.History("shared")
	assert.Len(t, history, rounds*4)
	for i := 0; i < len(history); i += 2 {
		assert.Equal(t, "user", history[i].Role)
		assert.Equal(t, "assistant", history[i+1].Role)
	}
}
