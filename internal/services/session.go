package services

import (
	"sync"
	"time"

	"ai_anchor_mini/internal/models"
)

// sessionState 单个会话的状态
type sessionState struct {
	turns        []models.Message
	lastActivity time.Time
}

// SessionStore 会话历史存储。会话在首次引用时惰性创建，进程生命周期内不淘汰。
// 追加操作由互斥锁串行化，一次完整交互的用户/助手两条消息在同一临界区内追加，
// 因此同一session_id被多个连接并发使用时，交互内部不会交错。
type SessionStore struct {
	systemPrompt string
	mu           sync.RWMutex
	sessions     map[string]*sessionState
}

// NewSessionStore 创建会话存储。systemPrompt非空时，新会话的首条消息为系统消息。
func NewSessionStore(systemPrompt string) *SessionStore {
	return &SessionStore{
		systemPrompt: systemPrompt,
		sessions:     make(map[string]*sessionState),
	}
}

// getOrCreateLocked 获取或创建会话，调用方必须持有写锁
func (s *SessionStore) getOrCreateLocked(sessionID string) *sessionState {
	if state, ok := s.sessions[sessionID]; ok {
		state.lastActivity = time.Now()
		return state
	}

	state := &sessionState{
		turns:        make([]models.Message, 0),
		lastActivity: time.Now(),
	}
	if s.systemPrompt != "" {
		state.turns = append(state.turns, models.Message{
			Role:    "system",
			Content: s.systemPrompt,
		})
	}
	s.sessions[sessionID] = state
	return state
}

// AppendExchange 原子追加一次完整交互：先用户消息，后助手消息
func (s *SessionStore) AppendExchange(sessionID, userText, assistantText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.getOrCreateLocked(sessionID)
	state.turns = append(state.turns,
		models.Message{Role: "user", Content: userText},
		models.Message{Role: "assistant", Content: assistantText},
	)
}

// History 返回会话历史的副本
func (s *SessionStore) History(sessionID string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.getOrCreateLocked(sessionID)
	history := make([]models.Message, len(state.turns))
	copy(history, state.turns)
	return history
}

// Clear 清除会话历史，保留系统消息
func (s *SessionStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.getOrCreateLocked(sessionID)
	state.turns = state.turns[:0]
	if s.systemPrompt != "" {
		state.turns = append(state.turns, models.Message{
			Role:    "system",
			Content: s.systemPrompt,
		})
	}
}

// Count 返回当前会话数
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
