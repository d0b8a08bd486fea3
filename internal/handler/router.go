package handler

import (
	"net/http"

	"github.com/codexa-studio/agency-assistant-go/internal/infra/observability"
	"github.com/codexa-studio/agency-assistant-go/internal/infra/ratelimit"
	"github.com/codexa-studio/agency-assistant-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Services bundles the application services the router exposes.
type Services struct {
	Chat    *service.Chat
	Contact *service.Contact
	Catalog *service.Catalog
	Health  *service.Health
}

// NewRouter creates the HTTP router with all routes and middleware.
// Routes follow the API contract of the agency chat widget.
func NewRouter(svcs Services, limiter *ratelimit.Limiter, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// --- Operational endpoints ---
	// The widget calls /health; /healthz is kept for probes.
	r.Get("/health", healthzHandler(svcs.Health))
	r.Get("/healthz", healthzHandler(svcs.Health))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}

		// =============================================
		// 1. 💬 Chat
		// POST /v1/chat
		// =============================================
		r.Post("/chat", chatHandler(svcs.Chat, logger))

		// =============================================
		// 2. 📇 Contact
		// POST /v1/contact
		// =============================================
		r.Post("/contact", contactHandler(svcs.Contact, logger))

		// =============================================
		// 3. 🧩 Services catalog
		// GET /v1/services
		// =============================================
		r.Get("/services", servicesHandler(svcs.Catalog, logger))

		// =============================================
		// 4. 📊 Metrics
		// GET /v1/metrics/chat
		// =============================================
		r.Get("/metrics/chat", chatMetricsHandler(metrics))
	})

	return r
}

// ============================================================
// Metrics & Health
// ============================================================

func chatMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetChatSnapshot())
	}
}

func healthzHandler(svc *service.Health) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Check(r.Context()))
	}
}

// ============================================================
// Probes
// ============================================================

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
