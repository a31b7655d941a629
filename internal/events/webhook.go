// internal/events/webhook.go
package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

const (
	webhookTimeout       = 10 * time.Second
	webhookMaxTries      = 5
	webhookRetryInterval = 500 * time.Millisecond
)

// WebhookSink POSTs events as JSON to an HTTPS endpoint, retrying transient
// failures with exponential backoff.
type WebhookSink struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewWebhookSink builds a sink for the given endpoint.
func NewWebhookSink(url string, logger *zap.Logger) *WebhookSink {
	return &WebhookSink{
		url:    url,
		client: &http.Client{Timeout: webhookTimeout},
		logger: logger,
	}
}

type webhookPayload struct {
	Type  string `json:"type"`
	Event Event  `json:"event"`
}

// Deliver implements Sink.
func (w *WebhookSink) Deliver(ctx context.Context, event Event) error {
	body, err := json.Marshal(webhookPayload{Type: event.Type(), Event: event})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = webhookRetryInterval

	notify := func(err error, d time.Duration) {
		w.logger.Debug("webhook delivery retry",
			zap.String("event_type", event.Type()),
			zap.Duration("backoff", d),
			zap.Error(err))
	}

	post := func() (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := w.client.Do(req)
		if err != nil {
			return struct{}{}, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return struct{}{}, fmt.Errorf("webhook returned %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return struct{}{}, backoff.Permanent(fmt.Errorf("webhook returned %d", resp.StatusCode))
		}
		return struct{}{}, nil
	}

	_, err = backoff.Retry(ctx, post,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(webhookMaxTries),
		backoff.WithNotify(notify))
	if err != nil {
		return fmt.Errorf("deliver %s to %s: %w", event.Type(), w.url, err)
	}
	return nil
}
