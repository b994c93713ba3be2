package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newFakeEndpoint serves a minimal chat-completions response and records
// the last request body.
func newFakeEndpoint(t *testing.T, content string) (*httptest.Server, *map[string]any) {
	t.Helper()
	var lastRequest map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&lastRequest); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		resp := map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1,
			"model":   "test-model",
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]any{
						"role":    "assistant",
						"content": content,
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, &lastRequest
}

func TestOpenAITranslate(t *testing.T) {
	srv, lastRequest := newFakeEndpoint(t, "  What?!  ")
	tr := NewOpenAI("test-key", srv.URL+"/v1", "test-model", "ja", "en")

	got, err := tr.Translate(context.Background(), "なに？！")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "What?!" {
		t.Errorf("Translate = %q, want trimmed %q", got, "What?!")
	}

	req := *lastRequest
	if req["model"] != "test-model" {
		t.Errorf("request model = %v, want test-model", req["model"])
	}
	messages, ok := req["messages"].([]any)
	if !ok || len(messages) != 2 {
		t.Fatalf("request messages = %v, want system + user", req["messages"])
	}
	user := messages[1].(map[string]any)
	if user["content"] != "なに？！" {
		t.Errorf("user message = %v, want source text", user["content"])
	}
}

func TestOpenAITranslateEmptyContent(t *testing.T) {
	srv, _ := newFakeEndpoint(t, "   ")
	tr := NewOpenAI("test-key", srv.URL+"/v1", "", "ja", "en")

	if _, err := tr.Translate(context.Background(), "text"); err == nil {
		t.Error("Translate succeeded on empty translation")
	}
}

func TestOpenAITranslateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	tr := NewOpenAI("test-key", srv.URL+"/v1", "", "ja", "en")
	if _, err := tr.Translate(context.Background(), "text"); err == nil {
		t.Error("Translate succeeded on server error")
	}
}

func TestPrompt(t *testing.T) {
	p := Prompt("ja", "en")
	if !strings.Contains(p, "ja") || !strings.Contains(p, "en") {
		t.Errorf("Prompt = %q, missing language pair", p)
	}
}
