// Package client holds the thin HTTP clients for the hosted external
// services: the Groq text-generation API and the Telegram bot API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/codexa-studio/agency-assistant-go/internal/domain"
	"github.com/codexa-studio/agency-assistant-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("infra/client")

// GroqClient calls an OpenAI-compatible chat-completions endpoint.
type GroqClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	cb         *gobreaker.CircuitBreaker
	bulkhead   *resilience.Bulkhead
}

// NewGroqClient creates a GroqClient. The bulkhead caps concurrent
// in-flight generations across all requests.
func NewGroqClient(httpClient *http.Client, baseURL, apiKey, model string, cb *gobreaker.CircuitBreaker, bulkhead *resilience.Bulkhead) *GroqClient {
	return &GroqClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		cb:         cb,
		bulkhead:   bulkhead,
	}
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage domain.TokenUsage `json:"usage"`
}

// Generate invokes the completion API and returns the generated text.
// The call is not retried: a failed generation is a failed turn and the
// caller answers with a canned localized apology instead.
func (c *GroqClient) Generate(ctx context.Context, req *domain.GenerateRequest) (*domain.GenerateResponse, error) {
	ctx, span := tracer.Start(ctx, "GroqClient.Generate")
	defer span.End()
	span.SetAttributes(attribute.String("llm.model", c.model))

	if err := c.bulkhead.Acquire(ctx); err != nil {
		return nil, &domain.ErrExternalService{Service: "groq", Err: err}
	}
	defer c.bulkhead.Release()

	result, err := c.cb.Execute(func() (any, error) {
		payload := chatCompletionRequest{
			Model: c.model,
			Messages: []chatMessage{
				{Role: "system", Content: req.SystemPrompt},
				{Role: "user", Content: req.UserPrompt},
			},
			MaxTokens:   req.MaxTokens,
			Temperature: req.Temperature,
		}
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}

		url := fmt.Sprintf("%s/openai/v1/chat/completions", c.baseURL)
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("groq API returned status %d", resp.StatusCode)
		}

		var decoded chatCompletionResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return nil, err
		}
		if len(decoded.Choices) == 0 {
			return nil, fmt.Errorf("groq API returned no choices")
		}

		return &domain.GenerateResponse{
			Text:       decoded.Choices[0].Message.Content,
			TokensUsed: decoded.Usage,
		}, nil
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "groq", Err: err}
	}

	return result.(*domain.GenerateResponse), nil
}
