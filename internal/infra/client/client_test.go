package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/codexa-studio/agency-assistant-go/internal/domain"
	"github.com/codexa-studio/agency-assistant-go/internal/infra/client"
	"github.com/codexa-studio/agency-assistant-go/internal/infra/resilience"
)

func testHTTPClient() *http.Client {
	return &http.Client{Timeout: 2 * time.Second}
}

func testResilienceCfg() resilience.Config {
	return resilience.Config{MaxRetries: 1, InitialBackoff: time.Millisecond}
}

// --- Groq ---

func TestGroqGenerate(t *testing.T) {
	var gotAuth string
	var gotPayload struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "Hello!"}}],
			"usage": {"prompt_tokens": 20, "completion_tokens": 5, "total_tokens": 25}
		}`))
	}))
	defer srv.Close()

	c := client.NewGroqClient(testHTTPClient(), srv.URL, "test-key", "llama-3.3-70b-versatile",
		resilience.NewCircuitBreaker("groq-test"), resilience.NewBulkhead(2))

	resp, err := c.Generate(context.Background(), &domain.GenerateRequest{
		SystemPrompt: "You are helpful.",
		UserPrompt:   "Say hello",
		MaxTokens:    100,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if resp.Text != "Hello!" {
		t.Errorf("unexpected text: %q", resp.Text)
	}
	if resp.TokensUsed.TotalTokens != 25 {
		t.Errorf("unexpected token usage: %+v", resp.TokensUsed)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("unexpected auth header: %q", gotAuth)
	}
	if gotPayload.Model != "llama-3.3-70b-versatile" {
		t.Errorf("unexpected model: %q", gotPayload.Model)
	}
	if len(gotPayload.Messages) != 2 || gotPayload.Messages[0].Role != "system" {
		t.Errorf("unexpected messages: %+v", gotPayload.Messages)
	}
}

func TestGroqGenerate_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	c := client.NewGroqClient(testHTTPClient(), srv.URL, "k", "m",
		resilience.NewCircuitBreaker("groq-test-2"), resilience.NewBulkhead(1))

	if _, err := c.Generate(context.Background(), &domain.GenerateRequest{UserPrompt: "hi"}); err == nil {
		t.Fatal("expected an error for an empty choices list")
	}
}

func TestGroqGenerate_NotRetried(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := client.NewGroqClient(testHTTPClient(), srv.URL, "k", "m",
		resilience.NewCircuitBreaker("groq-test-3"), resilience.NewBulkhead(1))

	if _, err := c.Generate(context.Background(), &domain.GenerateRequest{UserPrompt: "hi"}); err == nil {
		t.Fatal("expected an error")
	}
	if attempts != 1 {
		t.Errorf("generation must not be retried, got %d attempts", attempts)
	}
}

// --- Telegram ---

func TestTelegramNotify(t *testing.T) {
	var gotPath string
	var gotPayload struct {
		ChatID    string `json:"chat_id"`
		Text      string `json:"text"`
		ParseMode string `json:"parse_mode"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	c := client.NewTelegramClient(testHTTPClient(), srv.URL, "123:abc", "-100500",
		resilience.NewCircuitBreaker("tg-test"), testResilienceCfg())

	if err := c.Notify(context.Background(), "<b>New lead</b>"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if gotPath != "/bot123:abc/sendMessage" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotPayload.ChatID != "-100500" || gotPayload.Text != "<b>New lead</b>" {
		t.Errorf("unexpected payload: %+v", gotPayload)
	}
	if gotPayload.ParseMode != "HTML" {
		t.Errorf("expected HTML parse mode, got %q", gotPayload.ParseMode)
	}
}

func TestTelegramNotify_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok": false}`))
	}))
	defer srv.Close()

	c := client.NewTelegramClient(testHTTPClient(), srv.URL, "123:abc", "-100500",
		resilience.NewCircuitBreaker("tg-test-2"), testResilienceCfg())

	if err := c.Notify(context.Background(), "hello"); err == nil {
		t.Fatal("expected an error when the API reports not ok")
	}
}

func TestTelegramConfigured(t *testing.T) {
	cfg := testResilienceCfg()
	cb := resilience.NewCircuitBreaker("tg-test-3")

	c := client.NewTelegramClient(testHTTPClient(), "http://example.invalid", "", "", cb, cfg)
	if c.Configured() {
		t.Error("expected Configured=false without token and chat id")
	}

	c = client.NewTelegramClient(testHTTPClient(), "http://example.invalid", "tok", "chat", cb, cfg)
	if !c.Configured() {
		t.Error("expected Configured=true")
	}
}
