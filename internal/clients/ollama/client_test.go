package ollama_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai_anchor_mini/internal/clients/ollama"
)

func TestClient_Generate(t *testing.T) {
	// 创建测试服务器
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 检查请求方法
		if r.Method != "POST" {
			t.Errorf("期望POST请求，实际收到%s", r.Method)
		}

		// 检查请求路径
		if r.URL.Path != "/api/generate" {
			t.Errorf("期望路径/api/generate，实际收到%s", r.URL.Path)
		}

		// 检查Content-Type
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("期望Content-Type为application/json，实际收到%s", r.Header.Get("Content-Type"))
		}

		// 解析请求体
		var req ollama.GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("解析请求体失败: %v", err)
		}
		if req.Stream {
			t.Error("期望非流式请求")
		}
		if req.System != "系统提示" {
			t.Errorf("系统提示词不一致: %q", req.System)
		}

		// 返回模拟响应
		resp := ollama.GenerateResponse{
			Model:     "test-model",
			CreatedAt: time.Now().Format(time.RFC3339),
			Response:  "这是一个测试响应",
			Done:      true,
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	// 创建客户端
	client := ollama.NewClient(ollama.Config{
		Host:  server.URL,
		Model: "test-model",
	})

	resp, err := client.Generate(context.Background(), "系统提示", "你好", ollama.Options{
		Temperature: 0.7,
		NumPredict:  100,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if resp.Response != "这是一个测试响应" {
		t.Errorf("Generate() = %v, want %v", resp.Response, "这是一个测试响应")
	}
	if !resp.Done {
		t.Error("Generate() response not done")
	}
}

func TestClient_GenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := ollama.NewClient(ollama.Config{
		Host:  server.URL,
		Model: "missing-model",
	})

	if _, err := client.Generate(context.Background(), "", "你好", ollama.Options{}); err == nil {
		t.Error("期望服务器错误，实际没有返回错误")
	}
}

func TestClient_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("期望路径/api/tags，实际收到%s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := ollama.NewClient(ollama.Config{Host: server.URL, Model: "m"})
	if err := client.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}

	// 服务不可达
	server.Close()
	if err := client.Ping(context.Background()); err == nil {
		t.Error("期望连接错误，实际没有返回错误")
	}
}
