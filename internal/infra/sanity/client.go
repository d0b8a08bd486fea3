// Package sanity provides a client for the Sanity content-store query
// API. It is the real data backend for projects, pricing and team
// content.
package sanity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"

	"github.com/codexa-studio/agency-assistant-go/internal/content"
	"github.com/codexa-studio/agency-assistant-go/internal/domain"
	"github.com/codexa-studio/agency-assistant-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("sanity")

// Client wraps HTTP calls to the Sanity query endpoint
// (GET {base}/v{apiVersion}/data/query/{dataset}?query=...&$param=...).
type Client struct {
	httpClient *http.Client
	baseURL    string
	dataset    string
	apiVersion string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
	logger     *zap.Logger
}

// NewClient creates a Sanity client. baseURL is the project API host,
// e.g. https://<projectID>.apicdn.sanity.io.
func NewClient(httpClient *http.Client, baseURL, dataset, apiVersion string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		dataset:    dataset,
		apiVersion: apiVersion,
		cb:         cb,
		cfg:        cfg,
		logger:     logger,
	}
}

// queryEnvelope is the wire shape of a Sanity query response.
type queryEnvelope struct {
	Result json.RawMessage `json:"result"`
}

// Query executes a GROQ query. Parameters are bound as JSON-encoded
// $-values on the query string, never spliced into the expression.
func (c *Client) Query(ctx context.Context, q content.Query) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "Sanity.Query")
	defer span.End()

	var result json.RawMessage

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := c.doQuery(ctx, q)
			if err != nil {
				return err
			}
			result = body
			return nil
		})
	})

	if err != nil {
		span.SetAttributes(attribute.Bool("error", true))
		return nil, &domain.ErrExternalService{Service: "sanity", Err: err}
	}

	return result, nil
}

func (c *Client) doQuery(ctx context.Context, q content.Query) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("query", q.GROQ)

	// Deterministic parameter order keeps request URLs stable in logs.
	keys := make([]string, 0, len(q.Params))
	for k := range q.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		encoded, err := json.Marshal(q.Params[k])
		if err != nil {
			return nil, fmt.Errorf("encode param %q: %w", k, err)
		}
		params.Set("$"+k, string(encoded))
	}

	reqURL := fmt.Sprintf("%s/v%s/data/query/%s?%s", c.baseURL, c.apiVersion, c.dataset, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("sanity: request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("sanity: non-2xx response",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, fmt.Errorf("sanity returned status %d", resp.StatusCode)
	}

	var envelope queryEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode sanity response: %w", err)
	}

	c.logger.Debug("sanity: query OK", zap.Int("result_bytes", len(envelope.Result)))
	return envelope.Result, nil
}

// Ping runs a minimal count query to verify connectivity. Used by the
// health endpoint only; it bypasses retry to fail fast.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.doQuery(ctx, content.Query{GROQ: `count(*[_type == "project"])`})
	return err
}
