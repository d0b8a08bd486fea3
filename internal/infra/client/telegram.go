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
)

// TelegramClient delivers contact notifications through the Telegram
// bot API. Delivery failure is informational for the caller and must
// never fail a contact submission.
type TelegramClient struct {
	httpClient *http.Client
	baseURL    string
	botToken   string
	chatID     string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
}

// NewTelegramClient creates a TelegramClient. baseURL is normally
// https://api.telegram.org and overridable for tests.
func NewTelegramClient(httpClient *http.Client, baseURL, botToken, chatID string, cb *gobreaker.CircuitBreaker, cfg resilience.Config) *TelegramClient {
	return &TelegramClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		botToken:   botToken,
		chatID:     chatID,
		cb:         cb,
		cfg:        cfg,
	}
}

// Configured reports whether a bot token and destination chat are set.
func (c *TelegramClient) Configured() bool {
	return c.botToken != "" && c.chatID != ""
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type sendMessageResponse struct {
	OK bool `json:"ok"`
}

// Notify posts the text to the configured chat via sendMessage.
func (c *TelegramClient) Notify(ctx context.Context, text string) error {
	ctx, span := tracer.Start(ctx, "TelegramClient.Notify")
	defer span.End()

	if !c.Configured() {
		return &domain.ErrExternalService{Service: "telegram", Err: fmt.Errorf("bot token or chat id not configured")}
	}

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			payload := sendMessageRequest{ChatID: c.chatID, Text: text, ParseMode: "HTML"}
			body, err := json.Marshal(payload)
			if err != nil {
				return err
			}

			url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.botToken)
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
			}

			var decoded sendMessageResponse
			if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
				return err
			}
			if !decoded.OK {
				return fmt.Errorf("telegram API reported not ok")
			}
			return nil
		})
	})

	if err != nil {
		return &domain.ErrExternalService{Service: "telegram", Err: err}
	}
	return nil
}
