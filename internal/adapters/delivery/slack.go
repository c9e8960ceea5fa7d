package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Default Slack webhook client constants.
const defaultSlackTimeout = 5 * time.Second

// SlackWebhook posts messages to a Slack incoming webhook.
type SlackWebhook struct {
	webhookURL string
	client     *http.Client
}

// SlackOption applies a configuration option to the SlackWebhook sender.
type SlackOption func(*SlackWebhook)

// WithSlackHTTPClient injects a custom HTTP client.
func WithSlackHTTPClient(c *http.Client) SlackOption {
	return func(s *SlackWebhook) {
		if c != nil {
			s.client = c
		}
	}
}

// NewSlackWebhook creates a sender for the given incoming-webhook URL.
func NewSlackWebhook(webhookURL string, opts ...SlackOption) *SlackWebhook {
	s := &SlackWebhook{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: defaultSlackTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Kind implements Sender.
func (*SlackWebhook) Kind() string { return "slack" }

// Send implements Sender. Recipient addressing is the webhook's concern;
// the to field only shows up in the message text.
func (s *SlackWebhook) Send(ctx context.Context, _, to, subject, body string) error {
	if s.webhookURL == "" {
		return fmt.Errorf("%w: slack webhook not configured", ErrDeliveryFailed)
	}

	payload, err := json.Marshal(map[string]string{
		"text": fmt.Sprintf("*%s*\n%s\n_for %s_", subject, body, to),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: slack status %d", ErrDeliveryFailed, resp.StatusCode)
	}
	return nil
}
