package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codexa-studio/agency-assistant-go/internal/config"
	"github.com/codexa-studio/agency-assistant-go/internal/conversation"
	"github.com/codexa-studio/agency-assistant-go/internal/domain"
	"github.com/codexa-studio/agency-assistant-go/internal/handler"
	"github.com/codexa-studio/agency-assistant-go/internal/infra/cache"
	"github.com/codexa-studio/agency-assistant-go/internal/infra/client"
	"github.com/codexa-studio/agency-assistant-go/internal/infra/observability"
	"github.com/codexa-studio/agency-assistant-go/internal/infra/ratelimit"
	"github.com/codexa-studio/agency-assistant-go/internal/infra/resilience"
	"github.com/codexa-studio/agency-assistant-go/internal/infra/sanity"
	"github.com/codexa-studio/agency-assistant-go/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("sanity_dataset", cfg.SanityDataset),
		zap.String("groq_model", cfg.GroqModel),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("catalog_cache_ttl", cfg.CatalogCacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Int("details_threshold", cfg.DetailsThreshold),
	)

	if cfg.SanityBaseURL == "" {
		logger.Fatal("SANITY_PROJECT_ID or SANITY_BASE_URL must be set")
	}
	if cfg.GroqAPIKey == "" {
		logger.Fatal("GROQ_API_KEY must be set")
	}

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "agency-assistant")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	catalogCache := cache.New[[]domain.CatalogService](cfg.CatalogCacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	sanityCB := resilience.NewCircuitBreaker("sanity")
	groqCB := resilience.NewCircuitBreaker("groq")
	telegramCB := resilience.NewCircuitBreaker("telegram")
	bulkhead := resilience.NewBulkhead(cfg.MaxConcurrency)

	// --- Clients ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	sanityClient := sanity.NewClient(httpClient, cfg.SanityBaseURL, cfg.SanityDataset, cfg.SanityAPIVersion, sanityCB, resilienceCfg, logger)
	groqClient := client.NewGroqClient(httpClient, cfg.GroqAPIURL, cfg.GroqAPIKey, cfg.GroqModel, groqCB, bulkhead)
	telegramClient := client.NewTelegramClient(httpClient, cfg.TelegramAPIURL, cfg.TelegramBotToken, cfg.TelegramChatID, telegramCB, resilienceCfg)

	if !telegramClient.Configured() {
		logger.Warn("telegram not configured, lead notifications disabled")
	}

	// --- Services ---
	resolver := conversation.NewResolver(conversation.Options{
		DetailsThreshold: cfg.DetailsThreshold,
		GreetingMaxWords: cfg.GreetingMaxWords,
	})

	svcs := handler.Services{
		Chat:    service.NewChat(sanityClient, groqClient, resolver, metrics, logger),
		Contact: service.NewContact(telegramClient, groqClient, metrics, logger),
		Catalog: service.NewCatalog(sanityClient, catalogCache, metrics, logger),
		Health:  service.NewHealth(sanityClient, telegramClient, logger),
	}

	// --- Rate limiting ---
	limiter := ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// --- Router ---
	router := handler.NewRouter(svcs, limiter, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
