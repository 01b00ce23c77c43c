package kv

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
)

// DialFunc attempts to open a Backend. It is invoked at most once per
// Client.
type DialFunc func() (Backend, error)

// Client wraps a Backend behind a single lazy initialization attempt
// and a soft-failure contract: reads on an unreachable store report
// absence, writes report an unacknowledged no-op, and no store
// condition ever surfaces as an error to callers.
//
// The first operation (from any goroutine) triggers the dial. Whatever
// the dial resolves to — a live backend or an unavailable marker — is
// cached for the remaining process lifetime; there is no retry of a
// failed dial. Errors from a live backend during an individual call
// are logged and degraded the same way, without invalidating the
// cached handle, so the next call runs fresh against the live backend.
type Client struct {
	dial   DialFunc
	logger *slog.Logger

	once    sync.Once
	backend Backend // nil after resolution means the store is unavailable
}

// NewClient returns a Client that will dial the backend on first use.
func NewClient(dial DialFunc, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{dial: dial, logger: logger}
}

// NewClientWithBackend returns a Client bound to an already-open
// backend. Used when the caller dialed eagerly at startup, and in
// tests.
func NewClientWithBackend(b Backend, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{logger: logger}
	c.once.Do(func() { c.backend = b })
	return c
}

// resolve runs the dial exactly once and returns the cached backend,
// or nil when the store is unavailable.
func (c *Client) resolve() Backend {
	c.once.Do(func() {
		if c.dial == nil {
			c.logger.Warn("kv: no backend configured, operating in unavailable mode")
			return
		}
		b, err := c.dial()
		if err != nil {
			c.logger.Error("kv: backend unavailable, all operations will soft-fail", "error", err)
			return
		}
		c.backend = b
	})
	return c.backend
}

// Available reports whether the client resolved to a live backend.
// Calling it triggers initialization if it has not run yet.
func (c *Client) Available() bool {
	return c.resolve() != nil
}

// Get returns the raw JSON stored under key, or ok=false when the key
// is absent, the store is unavailable, or the read fails.
func (c *Client) Get(ctx context.Context, key string) (json.RawMessage, bool) {
	b := c.resolve()
	if b == nil {
		return nil, false
	}
	data, err := b.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.Warn("kv: get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return json.RawMessage(data), true
}

// Set marshals value as JSON and stores it under key. It reports
// whether the write was acknowledged.
func (c *Client) Set(ctx context.Context, key string, value any) bool {
	b := c.resolve()
	if b == nil {
		return false
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("kv: set skipped, value not serializable", "key", key, "error", err)
		return false
	}
	if err := b.Set(ctx, key, data); err != nil {
		c.logger.Warn("kv: set failed", "key", key, "error", err)
		return false
	}
	return true
}

// Delete removes key. It reports whether the delete was acknowledged.
func (c *Client) Delete(ctx context.Context, key string) bool {
	b := c.resolve()
	if b == nil {
		return false
	}
	if err := b.Delete(ctx, key); err != nil {
		c.logger.Warn("kv: delete failed", "key", key, "error", err)
		return false
	}
	return true
}

// Close closes the resolved backend, if any.
func (c *Client) Close() error {
	if b := c.resolve(); b != nil {
		return b.Close()
	}
	return nil
}
