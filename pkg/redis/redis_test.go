package redis_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webnotes/notesweb/pkg/cache"
	"github.com/webnotes/notesweb/pkg/redis"
)

// fakeClient keeps values in a map and answers with pre-built go-redis
// command results.
type fakeClient struct {
	mu   sync.Mutex
	data map[string]string
	ttl  map[string]time.Duration
	err  error
}

func newFakeClient() *fakeClient {
	return &fakeClient{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeClient) Get(_ context.Context, key string) *goredis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return goredis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeClient) Set(_ context.Context, key string, value any, exp time.Duration) *goredis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return goredis.NewStatusResult("", f.err)
	}
	f.data[key] = string(value.([]byte))
	f.ttl[key] = exp
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeClient) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return goredis.NewIntResult(n, nil)
}

func (f *fakeClient) Ping(context.Context) *goredis.StatusCmd {
	if f.err != nil {
		return goredis.NewStatusResult("", f.err)
	}
	return goredis.NewStatusResult("PONG", nil)
}

func TestCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("round trip with prefix", func(t *testing.T) {
		t.Parallel()
		db := newFakeClient()
		c := redis.NewCache(db, "nw:")

		_, err := c.Get(ctx, "profile:alice")
		assert.ErrorIs(t, err, cache.ErrMiss)

		require.NoError(t, c.Set(ctx, "profile:alice", []byte(`{"name":"Alice"}`), time.Minute))
		assert.Equal(t, time.Minute, db.ttl["nw:profile:alice"])

		v, err := c.Get(ctx, "profile:alice")
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Alice"}`, string(v))

		require.NoError(t, c.Delete(ctx, "profile:alice"))
		_, err = c.Get(ctx, "profile:alice")
		assert.ErrorIs(t, err, cache.ErrMiss)
	})

	t.Run("server error is not a miss", func(t *testing.T) {
		t.Parallel()
		db := newFakeClient()
		db.err = errors.New("READONLY")
		c := redis.NewCache(db, "")

		_, err := c.Get(ctx, "k")
		require.Error(t, err)
		assert.NotErrorIs(t, err, cache.ErrMiss)
		assert.Error(t, c.Set(ctx, "k", []byte("v"), 0))
	})

	t.Run("works behind a loader", func(t *testing.T) {
		t.Parallel()
		l := cache.NewLoader[string](redis.NewCache(newFakeClient(), "nw:"), time.Minute)
		calls := 0
		fetch := func(context.Context) (string, error) {
			calls++
			return "v", nil
		}
		for range 2 {
			v, err := l.Load(ctx, "k", fetch)
			require.NoError(t, err)
			assert.Equal(t, "v", v)
		}
		assert.Equal(t, 1, calls)
	})
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	db := newFakeClient()
	assert.NoError(t, redis.Healthcheck(db)(context.Background()))

	db.err = errors.New("down")
	assert.ErrorIs(t, redis.Healthcheck(db)(context.Background()), redis.ErrHealthcheckFailed)
}

func TestConnect(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(context.Background(), redis.Config{})
	assert.ErrorIs(t, err, redis.ErrEmptyURL)

	_, err = redis.Connect(context.Background(), redis.Config{ConnectionURL: "http://nope"})
	assert.ErrorIs(t, err, redis.ErrInvalidURL)

	assert.False(t, redis.Config{}.Enabled())
	assert.True(t, redis.Config{ConnectionURL: "redis://localhost:6379/0"}.Enabled())
}
