// Package ws 提供WebSocket接入层：连接升级、欢迎消息和单连接消息循环
package ws

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"ai_anchor_mini/internal/config"
	"ai_anchor_mini/internal/protocol"
	"ai_anchor_mini/internal/services"
)

// welcomeMessage 连接建立后立即下发的状态消息
const welcomeMessage = "Connected to AI Virtual Anchor server."

// Server WebSocket接入服务器
type Server struct {
	upgrader       websocket.Upgrader
	broker         *services.Broker
	conns          *services.ConnRegistry
	maxMessageSize int64
}

// NewServer 创建WebSocket接入服务器
func NewServer(cfg *config.Config, broker *services.Broker, conns *services.ConnRegistry) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 在生产环境中应该实现适当的源检查
			},
			ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
			WriteBufferSize: cfg.WebSocket.WriteBufferSize,
		},
		broker:         broker,
		conns:          conns,
		maxMessageSize: cfg.WebSocket.MaxMessageSize,
	}
}

// HandleConnection 处理WebSocket连接，gin路由处理函数。
// 同一连接上的消息严格串行处理：上一条请求的响应（或错误）发出之前，
// 不会读取下一条消息。不同连接之间完全并发。
func (s *Server) HandleConnection(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("升级WebSocket连接失败: %v", err)
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	log.Printf("客户端已连接: %s (%s)", conn.RemoteAddr(), connID)

	s.conns.Register(connID, func(data []byte) error {
		return conn.WriteMessage(websocket.TextMessage, data)
	})
	defer s.conns.Unregister(connID)

	conn.SetReadLimit(s.maxMessageSize)

	// 发送连接成功消息
	welcome, err := protocol.Encode(protocol.MessageTypeSystemStatus, map[string]interface{}{
		"message": welcomeMessage,
	}, "")
	if err == nil {
		if err := conn.WriteMessage(websocket.TextMessage, welcome); err != nil {
			log.Printf("发送欢迎消息失败 (%s): %v", connID, err)
			return
		}
	}

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("读取WebSocket消息失败 (%s): %v", connID, err)
			} else {
				log.Printf("客户端已断开: %s (%s)", conn.RemoteAddr(), connID)
			}
			break
		}

		// 只接受文本帧
		if messageType != websocket.TextMessage {
			log.Printf("收到非文本消息 (%s)，忽略", connID)
			continue
		}

		s.broker.HandleMessage(c.Request.Context(), connID, message)
	}
}
