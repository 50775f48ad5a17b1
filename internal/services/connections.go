package services

import (
	"fmt"
	"log"
	"sync"
)

// SendFunc 向某个连接推送已序列化消息的回调
type SendFunc func(data []byte) error

// ConnRegistry 连接注册表，维护活跃连接到发送回调的映射
type ConnRegistry struct {
	mu    sync.RWMutex
	conns map[string]SendFunc
}

// NewConnRegistry 创建连接注册表
func NewConnRegistry() *ConnRegistry {
	return &ConnRegistry{
		conns: make(map[string]SendFunc),
	}
}

// Register 注册一个连接及其发送回调，同一连接重复注册会覆盖旧回调
func (r *ConnRegistry) Register(connID string, send SendFunc) {
	r.mu.Lock()
	r.conns[connID] = send
	r.mu.Unlock()
	log.Printf("连接已注册: %s，当前连接数: %d", connID, r.Count())
}

// Unregister 注销一个连接，注销未知连接是空操作
func (r *ConnRegistry) Unregister(connID string) {
	r.mu.Lock()
	delete(r.conns, connID)
	r.mu.Unlock()
	log.Printf("连接已注销: %s，当前连接数: %d", connID, r.Count())
}

// Has 检查连接是否已注册
func (r *ConnRegistry) Has(connID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.conns[connID]
	return ok
}

// Count 返回当前活跃连接数
func (r *ConnRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// Send 向指定连接发送消息
func (r *ConnRegistry) Send(connID string, data []byte) error {
	r.mu.RLock()
	send, ok := r.conns[connID]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownConn, connID)
	}
	return send(data)
}
