// Package routes 提供HTTP路由注册
package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"ai_anchor_mini/internal/handlers"
	"ai_anchor_mini/internal/services"
	"ai_anchor_mini/internal/ws"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, wsServer *ws.Server, sessions *services.SessionStore) {

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// WebSocket接入
	r.GET("/ws", wsServer.HandleConnection)

	// 会话历史接口
	sessionHandler := handlers.NewSessionHandler(sessions)
	r.GET("/sessions/:id/history", sessionHandler.GetHistory)
	r.DELETE("/sessions/:id/history", sessionHandler.ClearHistory)
}
