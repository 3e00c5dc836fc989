package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultPingTimeout = 5 * time.Second
	// Per-command read/write deadline for cache calls on the request path.
	defaultOpTimeout = 500 * time.Millisecond
	clientName       = "event-organizer"
)

// Config holds the cache connection settings. Zero timeouts and pool size
// fall back to the defaults above and the driver's own.
type Config struct {
	Addr      string
	Password  string
	DB        int
	PoolSize  int
	Timeout   time.Duration
	OpTimeout time.Duration
}

func (cfg Config) options() *redis.Options {
	op := cfg.OpTimeout
	if op <= 0 {
		op = defaultOpTimeout
	}
	return &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		ClientName:   clientName,
		ReadTimeout:  op,
		WriteTimeout: op,
	}
}

// Connect opens the event cache client and pings it once. The returned
// client is safe for concurrent use and owned by the caller.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	client := redis.NewClient(cfg.options())

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s db %d: %w", cfg.Addr, cfg.DB, err)
	}
	return client, nil
}
