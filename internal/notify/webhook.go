package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const webhookMaxAttempts = 3

// WebhookNotifier POSTs the notification as JSON to a fixed endpoint.
// Any 2xx counts as delivered; the response body is ignored. Failed
// attempts are retried with exponential backoff, then dropped with an
// error log — there is no durable outbox.
type WebhookNotifier struct {
	url     string
	client  *http.Client
	backoff func(attempt int) time.Duration
}

func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	return &WebhookNotifier{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		backoff: defaultBackoff,
	}
}

// defaultBackoff doubles the wait per attempt: 1s, 2s, 4s, ...
func defaultBackoff(attempt int) time.Duration {
	return time.Duration(1<<attempt) * time.Second
}

func (n *WebhookNotifier) OrderPlaced(ctx context.Context, notif *Notification) error {
	body, err := json.Marshal(notif)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < webhookMaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(n.backoff(attempt - 1)):
			}
		}

		lastErr = n.post(ctx, body)
		if lastErr == nil {
			return nil
		}
		log.Warn().
			Str("order_id", notif.OrderID).
			Int("attempt", attempt+1).
			Err(lastErr).
			Msg("order webhook delivery failed")
	}
	return fmt.Errorf("webhook delivery failed after %d attempts: %w", webhookMaxAttempts, lastErr)
}

func (n *WebhookNotifier) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
