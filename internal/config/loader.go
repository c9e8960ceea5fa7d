package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if WEHACK_CONFIG is set
//  3. env (prefix WEHACK_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("WEHACK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: WEHACK_ADDR, WEHACK_HISTORY_DEPTH, ...
	// Map env keys like WEHACK_HISTORY_DEPTH -> history_depth (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("WEHACK_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "wehack_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.SubmitCooldownSeconds < 0:
		return fmt.Errorf("%w: submit_cooldown_seconds must not be negative", ErrInvalidConfig)
	case c.HistoryDepth < 1:
		return fmt.Errorf("%w: history_depth must be at least 1", ErrInvalidConfig)
	case c.MaxFileSizeBytes < 1:
		return fmt.Errorf("%w: max_file_size_bytes must be positive", ErrInvalidConfig)
	case c.WeightInnovation < 0 || c.WeightImpact < 0 || c.WeightExecution < 0:
		return fmt.Errorf("%w: scoring weights must not be negative", ErrInvalidConfig)
	case c.ShardCount < 1:
		return fmt.Errorf("%w: shard_count must be at least 1", ErrInvalidConfig)
	case c.BroadcastParallelism < 1:
		return fmt.Errorf("%w: broadcast_parallelism must be at least 1", ErrInvalidConfig)
	case c.OutboxCapacity < 1:
		return fmt.Errorf("%w: outbox_capacity must be at least 1", ErrInvalidConfig)
	case c.OutboxWorkers < 1:
		return fmt.Errorf("%w: outbox_workers must be at least 1", ErrInvalidConfig)
	}
	return nil
}
