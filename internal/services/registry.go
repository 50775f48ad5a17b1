package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"ai_anchor_mini/internal/models"
)

// Stage 流水线阶段标识，固定集合
type Stage string

const (
	StageSTT Stage = "stt" // 语音识别
	StageLLM Stage = "llm" // 文本生成
	StageTTS Stage = "tts" // 语音合成
)

// Registry 处理服务注册表，按固定的阶段标识管理服务实例
type Registry struct {
	mu       sync.RWMutex
	services map[Stage]models.Service
}

// NewRegistry 创建空的服务注册表
func NewRegistry() *Registry {
	return &Registry{
		services: make(map[Stage]models.Service),
	}
}

// Register 注册服务，替换同阶段的已有服务
func (r *Registry) Register(stage Stage, svc models.Service) {
	r.mu.Lock()
	r.services[stage] = svc
	r.mu.Unlock()
	log.Printf("服务已注册: %s -> %s", stage, svc.Name())
}

// Get 获取指定阶段的服务实例
func (r *Registry) Get(stage Stage) (models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	svc, ok := r.services[stage]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownService, stage)
	}
	return svc, nil
}

// Remove 移除并返回指定阶段的服务实例
func (r *Registry) Remove(stage Stage) (models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	svc, ok := r.services[stage]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownService, stage)
	}
	delete(r.services, stage)
	log.Printf("服务已移除: %s", stage)
	return svc, nil
}

// Has 检查指定阶段是否已注册服务
func (r *Registry) Has(stage Stage) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.services[stage]
	return ok
}

// STT 获取语音识别服务
func (r *Registry) STT() (models.STTService, error) {
	svc, err := r.Get(StageSTT)
	if err != nil {
		return nil, err
	}
	stt, ok := svc.(models.STTService)
	if !ok {
		return nil, fmt.Errorf("%w: %s 不是语音识别服务", ErrUnknownService, svc.Name())
	}
	return stt, nil
}

// LLM 获取文本生成服务
func (r *Registry) LLM() (models.LLMService, error) {
	svc, err := r.Get(StageLLM)
	if err != nil {
		return nil, err
	}
	llm, ok := svc.(models.LLMService)
	if !ok {
		return nil, fmt.Errorf("%w: %s 不是文本生成服务", ErrUnknownService, svc.Name())
	}
	return llm, nil
}

// TTS 获取语音合成服务
func (r *Registry) TTS() (models.TTSService, error) {
	svc, err := r.Get(StageTTS)
	if err != nil {
		return nil, err
	}
	tts, ok := svc.(models.TTSService)
	if !ok {
		return nil, fmt.Errorf("%w: %s 不是语音合成服务", ErrUnknownService, svc.Name())
	}
	return tts, nil
}

// InitializeAll 并发初始化所有已注册服务，任一失败即返回错误。
// 初始化失败时不应开始对外服务。
func (r *Registry) InitializeAll(ctx context.Context) error {
	r.mu.RLock()
	snapshot := make(map[Stage]models.Service, len(r.services))
	for stage, svc := range r.services {
		snapshot[stage] = svc
	}
	r.mu.RUnlock()

	log.Println("正在初始化所有服务...")

	g, gctx := errgroup.WithContext(ctx)
	for stage, svc := range snapshot {
		stage, svc := stage, svc
		g.Go(func() error {
			if err := svc.Initialize(gctx); err != nil {
				return fmt.Errorf("服务 %s(%s) 初始化失败: %w", stage, svc.Name(), err)
			}
			log.Printf("服务初始化完成: %s(%s)", stage, svc.Name())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	log.Println("所有服务初始化完成")
	return nil
}

// ShutdownAll 关闭所有已注册服务。尽力而为：单个服务关闭失败只记录日志，
// 不影响其余服务的关闭。
func (r *Registry) ShutdownAll(ctx context.Context) {
	r.mu.RLock()
	snapshot := make(map[Stage]models.Service, len(r.services))
	for stage, svc := range r.services {
		snapshot[stage] = svc
	}
	r.mu.RUnlock()

	log.Println("正在关闭所有服务...")

	var wg sync.WaitGroup
	for stage, svc := range snapshot {
		stage, svc := stage, svc
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svc.Shutdown(ctx); err != nil {
				log.Printf("服务 %s(%s) 关闭失败: %v", stage, svc.Name(), err)
				return
			}
			log.Printf("服务已关闭: %s(%s)", stage, svc.Name())
		}()
	}
	wg.Wait()
	log.Println("所有服务已关闭")
}
