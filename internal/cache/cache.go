// Package cache provides the key-value gateway used for derived
// aggregates. The cache is a disposable accelerator: every consumer must
// stay correct when it is replaced by the always-miss Noop implementation.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss signals the key is not present in the cache.
var ErrMiss = errors.New("cache: key not found")

// Cache is the minimal get/set/delete contract over a key-value store.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Noop is a cache that never holds anything. Get always misses and
// writes are discarded. It backs deployments without Redis and serves as
// the canonical test double.
type Noop struct{}

func (Noop) Get(context.Context, string) (string, error) { return "", ErrMiss }

func (Noop) Set(context.Context, string, string, time.Duration) error { return nil }

func (Noop) Delete(context.Context, string) error { return nil }
