// Package service contains the application services sitting between the
// HTTP handlers and the outbound adapters.
package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/codexa-studio/agency-assistant-go/internal/content"
	"github.com/codexa-studio/agency-assistant-go/internal/conversation"
	"github.com/codexa-studio/agency-assistant-go/internal/domain"
	"github.com/codexa-studio/agency-assistant-go/internal/infra/observability"
	"github.com/codexa-studio/agency-assistant-go/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("service/chat")

const (
	generateMaxTokens   = 400
	generateTemperature = 0.6
)

// Chat orchestrates one conversation turn: classify, fetch content,
// resolve the stage, call the generator and assemble the response.
// The service keeps no conversation state between calls.
type Chat struct {
	store    port.ContentStore
	gen      port.Generator
	resolver *conversation.Resolver
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewChat creates the chat service with all dependencies injected.
func NewChat(
	store port.ContentStore,
	gen port.Generator,
	resolver *conversation.Resolver,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Chat {
	return &Chat{
		store:    store,
		gen:      gen,
		resolver: resolver,
		metrics:  metrics,
		logger:   logger,
	}
}

// fetchOutcome is what the content-store step produced for the turn.
// A failed store call is recorded as attempted-with-nothing-found; the
// failure never escapes this struct.
type fetchOutcome struct {
	attempted      bool
	projects       []domain.Project
	pricing        *domain.PricingSection
	team           *domain.AboutSection
	hasPricingData bool
	hasTeamData    bool
	block          string
}

// HandleTurn processes one chat turn and returns the reply plus the
// classification metadata the frontend drives its UI from.
func (c *Chat) HandleTurn(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "Chat.HandleTurn")
	defer span.End()

	start := time.Now()
	defer func() {
		c.metrics.RecordRequestDuration("chat", time.Since(start))
	}()

	message := strings.TrimSpace(req.Message)
	if message == "" {
		lang := historyLanguage(req.History)
		return &domain.ChatResponse{
			ConversationID: uuid.NewString(),
			Reply:          conversation.EmptyMessageReply(lang),
			Metadata: &domain.ChatMetadata{
				Language:          lang,
				Intent:            domain.IntentGeneral,
				ConversationStage: domain.StageGreeting,
			},
		}, nil
	}

	// --- Step 1: Classify the turn ---
	lang := conversation.DetectLanguage(message)
	intent, keyword := conversation.ExtractIntent(message)
	svc := detectService(req.History, message)
	signals := conversation.DeriveSignals(req.History, message)

	c.metrics.RecordIntent(intent)
	span.SetAttributes(
		attribute.String("chat.language", string(lang)),
		attribute.String("chat.intent", string(intent)),
	)

	// --- Step 2: Fetch content when the turn calls for it ---
	var outcome fetchOutcome
	if c.resolver.NeedsContentFetch(req.History, message, intent) {
		outcome = c.fetchContent(ctx, intent, keyword, lang, svc)
	}

	// --- Step 3: Resolve the conversation stage ---
	res := c.resolver.Resolve(conversation.Input{
		History:        req.History,
		Message:        message,
		Language:       lang,
		Intent:         intent,
		Service:        svc,
		Signals:        signals,
		FetchAttempted: outcome.attempted,
		ProjectsFound:  len(outcome.projects),
		HasPricingData: outcome.hasPricingData,
		HasTeamData:    outcome.hasTeamData,
	})
	c.metrics.RecordStage(res.Stage)

	// --- Step 4: Generate the reply ---
	genReq := &domain.GenerateRequest{
		SystemPrompt: conversation.BuildSystemPrompt(res.Template, lang, outcome.block),
		UserPrompt:   conversation.BuildUserPrompt(req.History, message, 0),
		MaxTokens:    generateMaxTokens,
		Temperature:  generateTemperature,
	}

	genStart := time.Now()
	genResp, err := c.gen.Generate(ctx, genReq)
	c.metrics.RecordRequestDuration("generate", time.Since(genStart))
	if err != nil {
		// Generation failure is fatal for the turn. The handler maps it
		// to a localized canned apology.
		c.logger.Error("generation failed",
			zap.String("intent", string(intent)),
			zap.String("stage", string(res.Stage)),
			zap.Error(err),
		)
		c.metrics.IncrExternalError("groq")
		c.metrics.IncrRequest("error")
		return nil, &domain.ErrExternalService{Service: "groq", Err: err}
	}
	c.metrics.RecordTokens(genResp.TokensUsed.PromptTokens, genResp.TokensUsed.CompletionTokens)
	c.metrics.IncrRequest("success")

	return &domain.ChatResponse{
		ConversationID: uuid.NewString(),
		Reply:          genResp.Text,
		Metadata: &domain.ChatMetadata{
			Language:           lang,
			Intent:             intent,
			DetectedService:    svc,
			ProjectsFound:      len(outcome.projects),
			HasPricingData:     outcome.hasPricingData,
			HasTeamData:        outcome.hasTeamData,
			ConversationStage:  res.Stage,
			DetailsCollected:   signals.Count(),
			UserAgreed:         res.UserAgreed,
			AskedForPermission: res.AskedForPermission,
		},
	}, nil
}

// fetchContent runs the content-store query for the turn and formats
// the result. Store failures are logged and counted, then swallowed:
// the resolver sees an attempted fetch that found nothing.
func (c *Chat) fetchContent(ctx context.Context, intent domain.Intent, keyword string, lang domain.Language, svc domain.ServiceType) fetchOutcome {
	ctx, span := tracer.Start(ctx, "Chat.fetchContent")
	defer span.End()

	outcome := fetchOutcome{attempted: true}

	q := content.BuildQuery(intent, keyword)
	raw, err := c.store.Query(ctx, q)
	if err != nil {
		c.logger.Warn("content fetch failed, continuing without data",
			zap.String("intent", string(intent)),
			zap.Error(err),
		)
		c.metrics.IncrExternalError("sanity")
		return outcome
	}
	if len(raw) == 0 || string(raw) == "null" {
		return outcome
	}

	switch intent {
	case domain.IntentPricing:
		var sec domain.PricingSection
		if err := json.Unmarshal(raw, &sec); err != nil {
			c.logger.Warn("pricing payload decode failed", zap.Error(err))
			return outcome
		}
		if len(sec.Cards) == 0 {
			return outcome
		}
		outcome.pricing = &sec
		outcome.hasPricingData = true
		outcome.block = content.FormatPricing(&sec, lang, svc)
	case domain.IntentTeam:
		var sec domain.AboutSection
		if err := json.Unmarshal(raw, &sec); err != nil {
			c.logger.Warn("team payload decode failed", zap.Error(err))
			return outcome
		}
		if sec.Content.Empty() && len(sec.Info) == 0 {
			return outcome
		}
		outcome.team = &sec
		outcome.hasTeamData = true
		outcome.block = content.FormatTeam(&sec, lang)
	default:
		var projects []domain.Project
		if err := json.Unmarshal(raw, &projects); err != nil {
			c.logger.Warn("project payload decode failed", zap.Error(err))
			return outcome
		}
		outcome.projects = projects
		outcome.block = content.FormatProjects(projects, lang)
	}
	return outcome
}

// detectService checks the current message first, then falls back to
// earlier user messages so a service mentioned turns ago stays sticky.
func detectService(history []domain.Message, message string) domain.ServiceType {
	if svc := conversation.DetectServiceType(message); svc != domain.ServiceNone {
		return svc
	}
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role != "user" {
			continue
		}
		if svc := conversation.DetectServiceType(history[i].Content); svc != domain.ServiceNone {
			return svc
		}
	}
	return domain.ServiceNone
}

// historyLanguage guesses the language of an empty turn from the most
// recent user message, defaulting to English.
func historyLanguage(history []domain.Message) domain.Language {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == "user" {
			return conversation.DetectLanguage(history[i].Content)
		}
	}
	return domain.LangEnglish
}
