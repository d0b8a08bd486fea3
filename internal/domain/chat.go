package domain

// ============================================================
// Chat API — POST /v1/chat
// ============================================================

// Message is a single conversation entry. The server never persists
// messages; the caller resends the full history on every turn.
type Message struct {
	Role    string `json:"role"` // user | assistant
	Content string `json:"content"`
}

// ChatRequest is the body of POST /v1/chat.
type ChatRequest struct {
	Message string    `json:"message"`
	History []Message `json:"conversationHistory"`
}

// ChatMetadata describes what the classifier and stage resolver decided
// for this turn. The frontend drives its UI (contact form, service
// chips) off these fields.
type ChatMetadata struct {
	Language           Language    `json:"language"`
	Intent             Intent      `json:"intent"`
	DetectedService    ServiceType `json:"detectedService,omitempty"`
	ProjectsFound      int         `json:"projectsFound"`
	HasPricingData     bool        `json:"hasPricingData,omitempty"`
	HasTeamData        bool        `json:"hasTeamData,omitempty"`
	ConversationStage  Stage       `json:"conversationStage"`
	DetailsCollected   int         `json:"detailsCollected"`
	UserAgreed         bool        `json:"userAgreed"`
	AskedForPermission bool        `json:"askedForContactPermission,omitempty"`
}

// ChatResponse is what POST /v1/chat returns on success.
type ChatResponse struct {
	ConversationID string        `json:"conversationId"`
	Reply          string        `json:"reply"`
	Metadata       *ChatMetadata `json:"metadata"`
}

// ============================================================
// Generation service — request/response against the LLM API
// ============================================================

// GenerateRequest is the payload handed to the text-generation service.
type GenerateRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
}

// GenerateResponse is the decoded completion.
type GenerateResponse struct {
	Text       string
	TokensUsed TokenUsage
}

// TokenUsage tracks LLM token consumption for cost monitoring.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
