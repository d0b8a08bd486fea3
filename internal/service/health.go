package service

import (
	"context"
	"time"

	"github.com/codexa-studio/agency-assistant-go/internal/domain"
	"github.com/codexa-studio/agency-assistant-go/internal/port"

	"go.uber.org/zap"
)

const healthPingTimeout = 3 * time.Second

// Health checks the dependencies the assistant cannot run without.
type Health struct {
	store    port.ContentStore
	notifier port.Notifier
	logger   *zap.Logger
}

// NewHealth creates the health service.
func NewHealth(store port.ContentStore, notifier port.Notifier, logger *zap.Logger) *Health {
	return &Health{store: store, notifier: notifier, logger: logger}
}

// Check probes the content store and reports notifier configuration.
// It always returns a status; a failing dependency degrades the status
// instead of erroring the endpoint.
func (s *Health) Check(ctx context.Context) *domain.HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	var (
		sanityConnected bool
		latency         int64
	)

	start := time.Now()
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("content store ping failed", zap.Error(err))
	} else {
		sanityConnected = true
		latency = time.Since(start).Milliseconds()
	}

	status := "ok"
	if !sanityConnected {
		status = "degraded"
	}

	return &domain.HealthStatus{
		Status:              status,
		Timestamp:           time.Now().UTC().Format(time.RFC3339),
		SanityConnected:     sanityConnected,
		TelegramConfigured:  s.notifier.Configured(),
		ContentStoreLatency: latency,
	}
}
