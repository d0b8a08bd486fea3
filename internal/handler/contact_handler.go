package handler

import (
	"encoding/json"
	"net/http"

	"github.com/codexa-studio/agency-assistant-go/internal/domain"
	"github.com/codexa-studio/agency-assistant-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Contact — POST /v1/contact
// ============================================================

const maxContactBodyBytes = 32 * 1024

func contactHandler(svc *service.Contact, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/contact")
		defer span.End()

		r.Body = http.MaxBytesReader(w, r.Body, maxContactBodyBytes)

		var req domain.ContactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		resp, err := svc.Submit(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
