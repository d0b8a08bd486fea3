package domain

// ============================================================
// Health & Metrics API Responses
// ============================================================

// HealthStatus is returned by GET /healthz.
type HealthStatus struct {
	Status              string `json:"status"` // ok, degraded
	Timestamp           string `json:"timestamp"`
	SanityConnected     bool   `json:"sanityConnected"`
	TelegramConfigured  bool   `json:"telegramConfigured"`
	ContentStoreLatency int64  `json:"contentStoreLatencyMs,omitempty"`
}

// ChatMetrics is returned by GET /v1/metrics/chat.
type ChatMetrics struct {
	TotalRequests       int64   `json:"totalRequests"`
	ErrorRate           float64 `json:"errorRate"`
	AvgTokensPerRequest float64 `json:"avgTokensPerRequest"`
	EstimatedCostUsd    float64 `json:"estimatedCostUsd"`
	CacheHitRate        float64 `json:"cacheHitRate"`
	Period              string  `json:"period"`
}
