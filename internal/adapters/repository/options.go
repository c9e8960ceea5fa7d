package repository

// Default store configuration constants.
const defaultShardCount = 8

type config struct {
	shardCount int
}

// Option applies a configuration option to an in-memory store.
type Option func(*config)

// WithShardCount sets how many lock shards a store spreads its keys over.
func WithShardCount(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.shardCount = n
		}
	}
}

func settings(opts []Option) config {
	c := config{shardCount: defaultShardCount}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
