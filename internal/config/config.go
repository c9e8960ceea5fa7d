// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SubmitCooldownSeconds is the per-user, per-event pause between
	// accepted submissions.
	SubmitCooldownSeconds int `koanf:"submit_cooldown_seconds"`

	// HistoryDepth bounds the per-team undo stack.
	HistoryDepth int `koanf:"history_depth"`

	// MaxFileSizeBytes caps a submission attachment.
	MaxFileSizeBytes int64 `koanf:"max_file_size_bytes"`

	// WeightInnovation, WeightImpact and WeightExecution set the weighted
	// scoring split. They are normalized at use, so any positive ratio works.
	WeightInnovation float64 `koanf:"weight_innovation"`
	WeightImpact     float64 `koanf:"weight_impact"`
	WeightExecution  float64 `koanf:"weight_execution"`

	// ShardCount configures the number of shards in the in-memory stores.
	ShardCount int `koanf:"shard_count"`

	// BroadcastParallelism bounds concurrent deliveries during fan-out.
	BroadcastParallelism int `koanf:"broadcast_parallelism"`

	// OutboxCapacity bounds the async direct-notification queue; overflow
	// messages are dropped.
	OutboxCapacity int `koanf:"outbox_capacity"`

	// OutboxWorkers is the number of delivery workers draining the outbox.
	OutboxWorkers int `koanf:"outbox_workers"`

	// MailgunDomain and MailgunAPIKey configure the transactional mail sender.
	MailgunDomain string `koanf:"mailgun_domain"`
	MailgunAPIKey string `koanf:"mailgun_api_key"`

	// MailgunBaseURL overrides the API endpoint, mainly for tests.
	MailgunBaseURL string `koanf:"mailgun_base_url"`

	// SlackWebhookURL enables the Slack side channel when non-empty.
	SlackWebhookURL string `koanf:"slack_webhook_url"`

	// SMTPHost is the organizer mail relay, host:port.
	SMTPHost string `koanf:"smtp_host"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and currently
// unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:              "info",
		Addr:                  ":9080",
		SubmitCooldownSeconds: 60,
		HistoryDepth:          10,
		MaxFileSizeBytes:      1 << 20,
		WeightInnovation:      0.40,
		WeightImpact:          0.35,
		WeightExecution:       0.25,
		ShardCount:            8,
		BroadcastParallelism:  8,
		OutboxCapacity:        1024,
		OutboxWorkers:         4,
		SMTPHost:              "smtp.gmail.com:587",
	}
	return c
}
