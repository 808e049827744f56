package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

func chatCompletionHandler(t *testing.T, content string, hits *atomic.Int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)

		if req["model"] != "gpt-test" {
			t.Errorf("expected model 'gpt-test', got %v", req["model"])
		}
		if req["max_tokens"] != float64(4000) {
			t.Errorf("expected max_tokens 4000, got %v", req["max_tokens"])
		}
		if req["temperature"] != 0.3 {
			t.Errorf("expected temperature 0.3, got %v", req["temperature"])
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("expected bearer key, got %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 0,
			"model":   "gpt-test",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}
}

func TestOpenAIGenerator_Generate_Success(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(chatCompletionHandler(t, "Once upon a time", &hits))
	defer server.Close()

	gen := NewOpenAIGenerator("gpt-test", server.URL, 5*time.Second, StaticKey("sk-test"))

	text, err := gen.Generate(context.Background(), "tell me a story", Limits{MaxOutputTokens: 4000, Temperature: 0.3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Once upon a time" {
		t.Errorf("expected 'Once upon a time', got %q", text)
	}
	if hits.Load() != 1 {
		t.Errorf("expected exactly one call, got %d", hits.Load())
	}
}

func TestOpenAIGenerator_Generate_MissingKey(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(chatCompletionHandler(t, "unused", &hits))
	defer server.Close()

	for _, prompt := range []string{"", "a story about a shy turtle"} {
		gen := NewOpenAIGenerator("gpt-test", server.URL, time.Second, StaticKey("  "))

		_, err := gen.Generate(context.Background(), prompt, Limits{MaxOutputTokens: 10})
		if !IsConfiguration(err) {
			t.Fatalf("expected configuration error for %q, got %v", prompt, err)
		}
	}

	gen := NewOpenAIGenerator("gpt-test", server.URL, time.Second, nil)
	if _, err := gen.Generate(context.Background(), "p", Limits{MaxOutputTokens: 10}); !IsConfiguration(err) {
		t.Fatalf("expected configuration error for nil key source, got %v", err)
	}

	if hits.Load() != 0 {
		t.Errorf("expected no outbound call, got %d", hits.Load())
	}
}

func TestOpenAIGenerator_Generate_KeyCheckedEveryCall(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(chatCompletionHandler(t, "story", &hits))
	defer server.Close()

	t.Setenv("LULLABY_TEST_KEY", "sk-test")
	gen := NewOpenAIGenerator("gpt-test", server.URL, time.Second, func() string {
		return os.Getenv("LULLABY_TEST_KEY")
	})

	limits := Limits{MaxOutputTokens: 4000, Temperature: 0.3}
	if _, err := gen.Generate(context.Background(), "p", limits); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	os.Setenv("LULLABY_TEST_KEY", "")
	if _, err := gen.Generate(context.Background(), "p", limits); !IsConfiguration(err) {
		t.Fatalf("expected configuration error after key removal, got %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("expected one outbound call, got %d", hits.Load())
	}
}

func TestOpenAIGenerator_Generate_NoRetryOnServerError(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
	}))
	defer server.Close()

	gen := NewOpenAIGenerator("gpt-test", server.URL, time.Second, StaticKey("sk-test"))

	_, err := gen.Generate(context.Background(), "p", Limits{MaxOutputTokens: 10})
	if !IsService(err) {
		t.Fatalf("expected service error, got %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("expected a single attempt, got %d", hits.Load())
	}
}

func TestOpenAIGenerator_Generate_EmptyContent(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(chatCompletionHandler(t, "", &hits))
	defer server.Close()

	gen := NewOpenAIGenerator("gpt-test", server.URL, time.Second, StaticKey("sk-test"))

	_, err := gen.Generate(context.Background(), "p", Limits{MaxOutputTokens: 4000, Temperature: 0.3})
	if !IsService(err) {
		t.Fatalf("expected service error, got %v", err)
	}
}

func TestOpenRouterGenerator_Defaults(t *testing.T) {
	gen := NewOpenRouterGenerator("", "", 0, StaticKey("k"))

	if gen.Name() != "openrouter" {
		t.Errorf("expected name 'openrouter', got %q", gen.Name())
	}
	if gen.baseURL != DefaultOpenRouterURL {
		t.Errorf("expected base URL %q, got %q", DefaultOpenRouterURL, gen.baseURL)
	}
	if gen.Model() != DefaultOpenRouterModel {
		t.Errorf("expected model %q, got %q", DefaultOpenRouterModel, gen.Model())
	}
	if len(gen.extra) != 2 {
		t.Errorf("expected attribution headers, got %d options", len(gen.extra))
	}
}
