package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/codexa-studio/agency-assistant-go/internal/content"
	"github.com/codexa-studio/agency-assistant-go/internal/domain"
	"github.com/codexa-studio/agency-assistant-go/internal/infra/observability"
	"github.com/codexa-studio/agency-assistant-go/internal/port"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const catalogCacheKey = "catalog:services"

// emojiRules map pricing-card titles to the chip emoji the frontend
// renders. First match wins; Order matters because "web" is broad.
var emojiRules = []struct {
	substr string
	emoji  string
}{
	{"e-commerce", "🛒"},
	{"ecommerce", "🛒"},
	{"store", "🛒"},
	{"mobile", "📱"},
	{"app", "📱"},
	{"ai", "🤖"},
	{"automation", "🤖"},
	{"design", "🎨"},
	{"ui/ux", "🎨"},
	{"software", "⚙️"},
	{"web", "🌐"},
}

// fallbackCatalog is returned when the content store is unreachable and
// nothing is cached. The chip list must never come back empty.
var fallbackCatalog = []domain.CatalogService{
	{Name: "Professional Websites", Emoji: "🌐"},
	{Name: "Mobile App Development", Emoji: "📱"},
	{Name: "E-commerce", Emoji: "🛒"},
	{Name: "Custom Software", Emoji: "⚙️"},
	{Name: "Artificial Intelligence & Automation", Emoji: "🤖"},
	{Name: "UI/UX Design", Emoji: "🎨"},
}

// Catalog serves the GET /v1/services chip list, derived from the
// pricing section and cached. Concurrent cold-cache requests are
// collapsed into a single store call.
type Catalog struct {
	store   port.ContentStore
	cache   port.Cache[[]domain.CatalogService]
	group   singleflight.Group
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewCatalog creates the catalog service.
func NewCatalog(store port.ContentStore, cache port.Cache[[]domain.CatalogService], metrics *observability.Metrics, logger *zap.Logger) *Catalog {
	return &Catalog{
		store:   store,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

// List returns the service catalog, from cache when warm.
func (s *Catalog) List(ctx context.Context) ([]domain.CatalogService, error) {
	ctx, span := tracer.Start(ctx, "Catalog.List")
	defer span.End()

	if cached, ok := s.cache.Get(catalogCacheKey); ok {
		s.metrics.IncrCacheHit("catalog")
		return cached, nil
	}
	s.metrics.IncrCacheMiss("catalog")

	v, err, _ := s.group.Do(catalogCacheKey, func() (interface{}, error) {
		return s.load(ctx), nil
	})
	if err != nil {
		return fallbackCatalog, nil
	}
	return v.([]domain.CatalogService), nil
}

// load fetches the pricing section and derives the chip list. Any
// failure degrades to the hardcoded fallback without caching it, so
// the next request retries the store.
func (s *Catalog) load(ctx context.Context) []domain.CatalogService {
	q := content.BuildQuery(domain.IntentPricing, "")
	raw, err := s.store.Query(ctx, q)
	if err != nil {
		s.logger.Warn("catalog fetch failed, serving fallback", zap.Error(err))
		s.metrics.IncrExternalError("sanity")
		return fallbackCatalog
	}

	var sec domain.PricingSection
	if len(raw) == 0 || string(raw) == "null" || json.Unmarshal(raw, &sec) != nil || len(sec.Cards) == 0 {
		s.logger.Warn("catalog payload empty or invalid, serving fallback")
		return fallbackCatalog
	}

	services := make([]domain.CatalogService, 0, len(sec.Cards))
	for _, card := range sec.Cards {
		name := card.Title.In(domain.LangEnglish)
		if name == "" {
			continue
		}
		services = append(services, domain.CatalogService{
			Name:  name,
			Emoji: emojiFor(name),
			Price: card.Price,
		})
	}
	if len(services) == 0 {
		return fallbackCatalog
	}

	s.cache.Set(catalogCacheKey, services)
	return services
}

func emojiFor(name string) string {
	lower := strings.ToLower(name)
	for _, rule := range emojiRules {
		if strings.Contains(lower, rule.substr) {
			return rule.emoji
		}
	}
	return "💼"
}
