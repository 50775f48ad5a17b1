// Package handlers 提供HTTP接口处理器
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ai_anchor_mini/internal/services"
)

// SessionHandler 会话历史接口处理器
type SessionHandler struct {
	sessions *services.SessionStore
}

// NewSessionHandler 创建会话历史处理器
func NewSessionHandler(sessions *services.SessionStore) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// GetHistory 返回指定会话的历史记录
func (h *SessionHandler) GetHistory(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少会话ID"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"history":    h.sessions.History(sessionID),
	})
}

// ClearHistory 清除指定会话的历史记录
func (h *SessionHandler) ClearHistory(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少会话ID"})
		return
	}

	h.sessions.Clear(sessionID)
	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"status":     "cleared",
	})
}
