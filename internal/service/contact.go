package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/codexa-studio/agency-assistant-go/internal/domain"
	"github.com/codexa-studio/agency-assistant-go/internal/infra/observability"
	"github.com/codexa-studio/agency-assistant-go/internal/port"

	"go.uber.org/zap"
)

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,19}$`)
)

// Contact handles lead submissions: validate, summarize and notify the
// team. Notification delivery is best-effort; the submission itself
// never fails because a notification could not be sent.
type Contact struct {
	notifier port.Notifier
	gen      port.Generator
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewContact creates the contact service.
func NewContact(notifier port.Notifier, gen port.Generator, metrics *observability.Metrics, logger *zap.Logger) *Contact {
	return &Contact{
		notifier: notifier,
		gen:      gen,
		metrics:  metrics,
		logger:   logger,
	}
}

// Submit validates the lead and pushes a notification to the team
// channel. The returned NotificationSent flag is informational.
func (s *Contact) Submit(ctx context.Context, req *domain.ContactRequest) (*domain.ContactResponse, error) {
	ctx, span := tracer.Start(ctx, "Contact.Submit")
	defer span.End()

	if err := validateContact(req); err != nil {
		return nil, err
	}

	text := s.buildNotification(ctx, req)

	sent := false
	if s.notifier.Configured() {
		if err := s.notifier.Notify(ctx, text); err != nil {
			s.logger.Error("lead notification failed",
				zap.String("email", req.Email),
				zap.Error(err),
			)
			s.metrics.IncrExternalError("telegram")
		} else {
			sent = true
		}
	} else {
		s.logger.Warn("notifier not configured, lead recorded without notification",
			zap.String("email", req.Email),
		)
	}

	return &domain.ContactResponse{
		Success:          true,
		Message:          "Thanks! The team will get back to you shortly.",
		NotificationSent: sent,
	}, nil
}

func validateContact(req *domain.ContactRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return &domain.ErrValidation{Field: "name", Message: "name is required"}
	}
	if !emailRe.MatchString(strings.TrimSpace(req.Email)) {
		return &domain.ErrValidation{Field: "email", Message: "a valid email is required"}
	}
	if !phoneRe.MatchString(strings.TrimSpace(req.Phone)) {
		return &domain.ErrValidation{Field: "phone", Message: "a valid phone number is required"}
	}
	return nil
}

// buildNotification renders the team message. When a conversation
// summary is attached it is condensed through the generator; a failed
// condensation falls back to the raw text.
func (s *Contact) buildNotification(ctx context.Context, req *domain.ContactRequest) string {
	var b strings.Builder
	b.WriteString("<b>New lead</b>\n")
	fmt.Fprintf(&b, "Name: %s\n", req.Name)
	fmt.Fprintf(&b, "Email: %s\n", req.Email)
	fmt.Fprintf(&b, "Phone: %s\n", req.Phone)
	if req.SelectedService != "" {
		fmt.Fprintf(&b, "Service: %s\n", req.SelectedService)
	}
	if summary := strings.TrimSpace(req.ConversationSummary); summary != "" {
		b.WriteString("Summary: ")
		b.WriteString(s.condense(ctx, summary))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *Contact) condense(ctx context.Context, summary string) string {
	const maxRaw = 600
	resp, err := s.gen.Generate(ctx, &domain.GenerateRequest{
		SystemPrompt: "Condense the following conversation notes into at most two sentences for a sales team. Keep concrete facts (project type, features, budget, timeline). Output only the condensed text.",
		UserPrompt:   summary,
		MaxTokens:    120,
		Temperature:  0.2,
	})
	if err == nil && strings.TrimSpace(resp.Text) != "" {
		return strings.TrimSpace(resp.Text)
	}
	s.logger.Warn("summary condensation failed, using raw text", zap.Error(err))
	if runes := []rune(summary); len(runes) > maxRaw {
		return string(runes[:maxRaw]) + "…"
	}
	return summary
}
