package sanity_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/codexa-studio/agency-assistant-go/internal/content"
	"github.com/codexa-studio/agency-assistant-go/internal/infra/resilience"
	"github.com/codexa-studio/agency-assistant-go/internal/infra/sanity"

	"go.uber.org/zap"
)

func newTestClient(baseURL string) *sanity.Client {
	return sanity.NewClient(
		&http.Client{Timeout: 2 * time.Second},
		baseURL,
		"production",
		"2024-01-01",
		resilience.NewCircuitBreaker("sanity-test"),
		resilience.Config{MaxRetries: 1, InitialBackoff: time.Millisecond},
		zap.NewNop(),
	)
}

func TestQuery_BindsParamsOnURL(t *testing.T) {
	var gotPath string
	var gotQuery, gotKw, gotRaw string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		gotKw = r.URL.Query().Get("$kw")
		gotRaw = r.URL.Query().Get("$raw")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result": [{"_id": "p1"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	result, err := c.Query(context.Background(), content.Query{
		GROQ:   `*[_type == "project" && title.en match $kw]`,
		Params: map[string]string{"kw": "*food*", "raw": "food"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if gotPath != "/v2024-01-01/data/query/production" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotQuery != `*[_type == "project" && title.en match $kw]` {
		t.Errorf("unexpected query: %s", gotQuery)
	}
	// Params ride as JSON-encoded string values.
	if gotKw != `"*food*"` {
		t.Errorf("unexpected $kw: %s", gotKw)
	}
	if gotRaw != `"food"` {
		t.Errorf("unexpected $raw: %s", gotRaw)
	}
	if string(result) != `[{"_id": "p1"}]` {
		t.Errorf("unexpected result: %s", result)
	}
}

func TestQuery_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad query", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Query(context.Background(), content.Query{GROQ: `*[_type == "project"]`})
	if err == nil {
		t.Fatal("expected an error for a non-2xx response")
	}
}

func TestQuery_RetriesOnFailure(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			http.Error(w, "flaky", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"result": []}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Query(context.Background(), content.Query{GROQ: `*[_type == "project"]`})
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestPing(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected ping to fail")
	}
	// Ping fails fast without retrying.
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}
