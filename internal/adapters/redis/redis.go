// Package redis backs the request rate limiter shared by every catalog
// replica.
package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iconplus/catalog/internal/adapters/config"
	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 3 * time.Second

type Client struct {
	rdb    *redis.Client
	prefix string
}

// NewConnection dials the server named by cfg.URL and fails unless it
// answers PING within cfg.Timeout.
func NewConnection(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	opts.DialTimeout = timeout
	opts.ReadTimeout = timeout
	opts.WriteTimeout = timeout

	client := &Client{rdb: redis.NewClient(opts), prefix: strings.Trim(cfg.KeyPrefix, ":")}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	return client, nil
}

// Key joins parts with ':' under the configured prefix.
func (c *Client) Key(parts ...string) string {
	if c.prefix == "" {
		return strings.Join(parts, ":")
	}
	return c.prefix + ":" + strings.Join(parts, ":")
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
