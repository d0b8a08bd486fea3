package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/codexa-studio/agency-assistant-go/internal/conversation"
	"github.com/codexa-studio/agency-assistant-go/internal/domain"
	"github.com/codexa-studio/agency-assistant-go/internal/service"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Chat — POST /v1/chat
// ============================================================

// maxChatBodyBytes bounds the request body; history grows with every
// turn, so the cap is generous but finite.
const maxChatBodyBytes = 256 * 1024

func chatHandler(svc *service.Chat, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/chat")
		defer span.End()

		r.Body = http.MaxBytesReader(w, r.Body, maxChatBodyBytes)

		var req domain.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		span.SetAttributes(attribute.Int("chat.history_len", len(req.History)))

		resp, err := svc.HandleTurn(ctx, &req)
		if err != nil {
			var external *domain.ErrExternalService
			if errors.As(err, &external) {
				// The frontend shows the reply field directly, so a
				// generation failure gets a localized apology instead
				// of a bare error payload.
				logger.Error("chat turn failed", zap.String("service", external.Service), zap.Error(err))
				lang := conversation.DetectLanguage(req.Message)
				writeJSON(w, http.StatusInternalServerError, domain.ChatResponse{
					ConversationID: uuid.NewString(),
					Reply:          conversation.ErrorReply(lang),
					Metadata: &domain.ChatMetadata{
						Language:          lang,
						Intent:            domain.IntentGeneral,
						ConversationStage: domain.StageDiscovery,
					},
				})
				return
			}
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
