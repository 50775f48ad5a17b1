package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"ai_anchor_mini/internal/config"
	"ai_anchor_mini/internal/middleware"
	"ai_anchor_mini/internal/routes"
	"ai_anchor_mini/internal/services"
	"ai_anchor_mini/internal/ws"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("AI虚拟主播服务启动中...")

	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 装配处理服务
	registry, err := services.NewRegistryFromConfig(cfg)
	if err != nil {
		log.Fatalf("装配服务失败: %v", err)
	}

	// 初始化所有服务，失败则不启动服务器
	if err := registry.InitializeAll(context.Background()); err != nil {
		log.Fatalf("初始化服务失败: %v", err)
	}

	// 创建协调器及其持有的状态
	sessions := services.NewSessionStore(cfg.SystemPrompt)
	conns := services.NewConnRegistry()
	broker := services.NewBroker(registry, sessions, conns)
	wsServer := ws.NewServer(cfg, broker, conns)

	// 创建HTTP服务器
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	middleware.Setup(r)
	routes.RegisterRoutes(r, wsServer, sessions)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	log.Printf("服务已启动，监听 ws://%s/ws", addr)

	// 等待关闭信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("收到关闭信号，正在清理...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 先停止接入新请求，再关闭处理服务
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("关闭HTTP服务器失败: %v", err)
	}
	registry.ShutdownAll(shutdownCtx)

	log.Println("服务已退出")
}
