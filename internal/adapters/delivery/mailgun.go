package delivery

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Default Mailgun client constants.
const (
	defaultMailgunBaseURL = "https://api.mailgun.net/v3/"
	defaultMailgunTimeout = 10 * time.Second
)

// Mailgun sends mail through the Mailgun messages API.
type Mailgun struct {
	domain  string
	apiKey  string
	baseURL string
	client  *http.Client
}

// MailgunOption applies a configuration option to the Mailgun sender.
type MailgunOption func(*Mailgun)

// WithBaseURL overrides the API base URL, e.g. for the EU endpoint or tests.
func WithBaseURL(u string) MailgunOption {
	return func(m *Mailgun) {
		if u != "" {
			m.baseURL = u
		}
	}
}

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(c *http.Client) MailgunOption {
	return func(m *Mailgun) {
		if c != nil {
			m.client = c
		}
	}
}

// NewMailgun creates a Mailgun sender for the given domain and private key.
func NewMailgun(domain, apiKey string, opts ...MailgunOption) *Mailgun {
	m := &Mailgun{
		domain:  domain,
		apiKey:  apiKey,
		baseURL: defaultMailgunBaseURL,
		client:  &http.Client{Timeout: defaultMailgunTimeout},
	}
	for _, opt := range opts {
		opt(m)
	}
	if !strings.HasSuffix(m.baseURL, "/") {
		m.baseURL += "/"
	}
	return m
}

// Kind implements Sender.
func (*Mailgun) Kind() string { return "mailgun" }

// Send implements Sender. The platform is the envelope sender; the caller's
// from address goes out as Reply-To.
func (m *Mailgun) Send(ctx context.Context, from, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("%w: empty recipient", ErrDeliveryFailed)
	}

	form := url.Values{}
	form.Set("from", "no-reply@"+m.domain)
	form.Set("to", to)
	form.Set("subject", subject)
	form.Set("text", body)
	form.Set("h:Reply-To", from)

	endpoint := m.baseURL + m.domain + "/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	auth := base64.StdEncoding.EncodeToString([]byte("api:" + m.apiKey))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: mailgun status %d", ErrDeliveryFailed, resp.StatusCode)
	}
	return nil
}
