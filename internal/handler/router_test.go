package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/codexa-studio/agency-assistant-go/internal/content"
	"github.com/codexa-studio/agency-assistant-go/internal/conversation"
	"github.com/codexa-studio/agency-assistant-go/internal/domain"
	"github.com/codexa-studio/agency-assistant-go/internal/handler"
	"github.com/codexa-studio/agency-assistant-go/internal/infra/cache"
	"github.com/codexa-studio/agency-assistant-go/internal/infra/observability"
	"github.com/codexa-studio/agency-assistant-go/internal/service"

	"go.uber.org/zap"
)

// --- Mocks ---

type mockStore struct {
	result json.RawMessage
	err    error
}

func (m *mockStore) Query(_ context.Context, _ content.Query) (json.RawMessage, error) {
	return m.result, m.err
}

func (m *mockStore) Ping(_ context.Context) error { return m.err }

type mockGenerator struct {
	response *domain.GenerateResponse
	err      error
}

func (m *mockGenerator) Generate(_ context.Context, _ *domain.GenerateRequest) (*domain.GenerateResponse, error) {
	return m.response, m.err
}

type mockNotifier struct {
	configured bool
	err        error
}

func (m *mockNotifier) Notify(_ context.Context, _ string) error { return m.err }
func (m *mockNotifier) Configured() bool                         { return m.configured }

func newTestRouter(store *mockStore, gen *mockGenerator, notifier *mockNotifier) http.Handler {
	metrics := observability.NewMetrics()
	logger := zap.NewNop()
	resolver := conversation.NewResolver(conversation.Options{})

	svcs := handler.Services{
		Chat:    service.NewChat(store, gen, resolver, metrics, logger),
		Contact: service.NewContact(notifier, gen, metrics, logger),
		Catalog: service.NewCatalog(store, cache.New[[]domain.CatalogService](time.Minute), metrics, logger),
		Health:  service.NewHealth(store, notifier, logger),
	}
	return handler.NewRouter(svcs, nil, metrics, logger)
}

func defaultRouter() http.Handler {
	return newTestRouter(
		&mockStore{result: json.RawMessage("[]")},
		&mockGenerator{response: &domain.GenerateResponse{Text: "Hi there!"}},
		&mockNotifier{configured: true},
	)
}

// --- Tests ---

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	defaultRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	var status domain.HealthStatus
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("invalid health payload: %v", err)
	}
	if status.Status != "ok" {
		t.Errorf("expected status ok, got %s", status.Status)
	}
}

func TestReadyz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()

	defaultRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	defaultRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestChatEndpoint(t *testing.T) {
	body, _ := json.Marshal(domain.ChatRequest{Message: "hello"})
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	defaultRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp domain.ChatResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid chat payload: %v", err)
	}
	if resp.Reply != "Hi there!" {
		t.Errorf("unexpected reply: %q", resp.Reply)
	}
	if resp.Metadata == nil || resp.Metadata.ConversationStage != domain.StageGreeting {
		t.Errorf("expected greeting stage metadata, got %+v", resp.Metadata)
	}
}

func TestChatEndpoint_InvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	defaultRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestChatEndpoint_GenerationFailureReturnsLocalizedApology(t *testing.T) {
	router := newTestRouter(
		&mockStore{result: json.RawMessage("[]")},
		&mockGenerator{err: errors.New("rate limited")},
		&mockNotifier{},
	)

	body, _ := json.Marshal(domain.ChatRequest{Message: "Montrez-moi vos projets"})
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp domain.ChatResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid payload: %v", err)
	}
	if resp.Reply != conversation.ErrorReply(domain.LangFrench) {
		t.Errorf("expected the French canned apology, got %q", resp.Reply)
	}
}

func TestContactEndpoint(t *testing.T) {
	body, _ := json.Marshal(domain.ContactRequest{
		Name:  "Amina Berrada",
		Email: "amina@example.com",
		Phone: "+212600123456",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/contact", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	defaultRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp domain.ContactResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid contact payload: %v", err)
	}
	if !resp.Success || !resp.NotificationSent {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestContactEndpoint_MissingFields(t *testing.T) {
	body, _ := json.Marshal(domain.ContactRequest{Name: "Amina"})
	req := httptest.NewRequest(http.MethodPost, "/v1/contact", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	defaultRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestServicesEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/services", nil)
	rec := httptest.NewRecorder()

	defaultRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Services []domain.CatalogService `json:"services"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid services payload: %v", err)
	}
	if len(resp.Services) == 0 {
		t.Error("expected a non-empty services list")
	}
}

func TestChatMetricsEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/metrics/chat", nil)
	rec := httptest.NewRecorder()

	defaultRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var m domain.ChatMetrics
	if err := json.NewDecoder(rec.Body).Decode(&m); err != nil {
		t.Fatalf("invalid metrics payload: %v", err)
	}
	if m.Period != "all_time" {
		t.Errorf("expected period all_time, got %s", m.Period)
	}
}

func TestPing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()

	defaultRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
