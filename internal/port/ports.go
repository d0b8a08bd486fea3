// Package port defines the interfaces (ports) for external
// collaborators. Following hexagonal architecture, these ports decouple
// the service layer from the concrete Sanity/Groq/Telegram adapters.
package port

import (
	"context"
	"encoding/json"

	"github.com/codexa-studio/agency-assistant-go/internal/content"
	"github.com/codexa-studio/agency-assistant-go/internal/domain"
)

// ContentStore runs a structured-content query and returns the raw
// result payload, or nil when nothing matched.
type ContentStore interface {
	Query(ctx context.Context, q content.Query) (json.RawMessage, error)
	Ping(ctx context.Context) error
}

// Generator invokes the hosted text-generation service.
type Generator interface {
	Generate(ctx context.Context, req *domain.GenerateRequest) (*domain.GenerateResponse, error)
}

// Notifier delivers an out-of-band notification message.
type Notifier interface {
	Notify(ctx context.Context, text string) error
	Configured() bool
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
