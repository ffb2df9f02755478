package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/webnotes/notesweb/pkg/logger"
)

// Loader reads JSON-encoded values through a Cache. Concurrent loads of
// one key share a single fetch. A failing cache degrades to a direct fetch.
type Loader[V any] struct {
	cache  Cache
	ttl    time.Duration
	prefix string
	group  singleflight.Group
	log    *slog.Logger
}

type LoaderOption func(*loaderConfig)

type loaderConfig struct {
	prefix string
	log    *slog.Logger
}

// WithPrefix namespaces the loader's keys.
func WithPrefix(p string) LoaderOption {
	return func(c *loaderConfig) { c.prefix = p }
}

func WithLogger(l *slog.Logger) LoaderOption {
	return func(c *loaderConfig) {
		if l != nil {
			c.log = l
		}
	}
}

func NewLoader[V any](c Cache, ttl time.Duration, opts ...LoaderOption) *Loader[V] {
	cfg := loaderConfig{log: logger.Discard()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Loader[V]{cache: c, ttl: ttl, prefix: cfg.prefix, log: cfg.log}
}

// Load returns the cached value for key or calls fetch and stores its
// result. Fetch errors are returned as-is and never cached.
func (l *Loader[V]) Load(ctx context.Context, key string, fetch func(context.Context) (V, error)) (V, error) {
	key = l.prefix + key

	if v, ok := l.get(ctx, key); ok {
		return v, nil
	}

	res, err, _ := l.group.Do(key, func() (any, error) {
		v, err := fetch(ctx)
		if err != nil {
			return v, err
		}
		l.set(ctx, key, v)
		return v, nil
	})
	v, _ := res.(V)
	return v, err
}

// Forget drops key from the cache.
func (l *Loader[V]) Forget(ctx context.Context, key string) error {
	return l.cache.Delete(ctx, l.prefix+key)
}

func (l *Loader[V]) get(ctx context.Context, key string) (V, bool) {
	var v V
	raw, err := l.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			l.log.WarnContext(ctx, "cache read failed", logger.Component("cache"), logger.Error(err))
		}
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		l.log.WarnContext(ctx, "cache entry corrupt", logger.Component("cache"), logger.Error(err))
		return v, false
	}
	return v, true
}

func (l *Loader[V]) set(ctx context.Context, key string, v V) {
	raw, err := json.Marshal(v)
	if err != nil {
		l.log.WarnContext(ctx, "cache encode failed", logger.Component("cache"), logger.Error(fmt.Errorf("%s: %w", key, err)))
		return
	}
	if err := l.cache.Set(ctx, key, raw, l.ttl); err != nil {
		l.log.WarnContext(ctx, "cache write failed", logger.Component("cache"), logger.Error(err))
	}
}
