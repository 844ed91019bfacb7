package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kailas-cloud/hrsearch/internal/domain"
)

func chatServer(t *testing.T, status int, body any, check func(req map[string]any)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if check != nil {
			check(req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
}

func TestCompleter_Complete(t *testing.T) {
	srv := chatServer(t, http.StatusOK, map[string]any{
		"id":     "cmpl-1",
		"object": "chat.completion",
		"choices": []any{map[string]any{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": `Sure: {"skills":["Go"],"grade":"Senior"}`},
			"finish_reason": "stop",
		}},
		"usage": map[string]any{"prompt_tokens": 80, "completion_tokens": 20, "total_tokens": 100},
	}, func(req map[string]any) {
		if req["model"] != "qwen" {
			t.Errorf("unexpected model %v", req["model"])
		}
		if req["max_tokens"] != float64(500) {
			t.Errorf("unexpected max_tokens %v", req["max_tokens"])
		}
		msgs, _ := req["messages"].([]any)
		if len(msgs) != 2 {
			t.Errorf("expected 2 messages, got %d", len(msgs))
		}
	})
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Model = "qwen"
	res, err := NewCompleter(cfg).Complete(context.Background(), domain.CompletionRequest{
		Messages: []domain.Message{
			{Role: domain.RoleSystem, Content: "extract"},
			{Role: domain.RoleUser, Content: "Senior Go developer"},
		},
		MaxTokens:   500,
		Temperature: 0.3,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if res.Text != `Sure: {"skills":["Go"],"grade":"Senior"}` {
		t.Errorf("unexpected text %q", res.Text)
	}
	if res.PromptTokens != 80 || res.CompletionTokens != 20 {
		t.Errorf("unexpected usage %+v", res)
	}
}

func TestCompleter_NoChoices(t *testing.T) {
	srv := chatServer(t, http.StatusOK, map[string]any{"choices": []any{}}, nil)
	defer srv.Close()

	_, err := NewCompleter(testConfig(srv.URL)).Complete(context.Background(), domain.CompletionRequest{})
	if !errors.Is(err, domain.ErrCompletionProviderError) {
		t.Fatalf("expected ErrCompletionProviderError, got %v", err)
	}
}

func TestCompleter_ServerError(t *testing.T) {
	srv := chatServer(t, http.StatusBadGateway, map[string]any{"detail": "upstream down"}, nil)
	defer srv.Close()

	_, err := NewCompleter(testConfig(srv.URL)).Complete(context.Background(), domain.CompletionRequest{})
	if !errors.Is(err, domain.ErrCompletionProviderError) {
		t.Fatalf("expected ErrCompletionProviderError, got %v", err)
	}
}
