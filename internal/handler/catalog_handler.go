package handler

import (
	"net/http"

	"github.com/codexa-studio/agency-assistant-go/internal/domain"
	"github.com/codexa-studio/agency-assistant-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Services catalog — GET /v1/services
// ============================================================

func servicesHandler(svc *service.Catalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/services")
		defer span.End()

		services, err := svc.List(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, map[string][]domain.CatalogService{
			"services": services,
		})
	}
}
