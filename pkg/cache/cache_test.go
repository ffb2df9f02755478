package cache_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webnotes/notesweb/pkg/cache"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("get set delete", func(t *testing.T) {
		t.Parallel()
		m := cache.NewMemory(4)

		_, err := m.Get(ctx, "a")
		assert.ErrorIs(t, err, cache.ErrMiss)

		require.NoError(t, m.Set(ctx, "a", []byte("1"), 0))
		v, err := m.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("1"), v)

		require.NoError(t, m.Delete(ctx, "a"))
		_, err = m.Get(ctx, "a")
		assert.ErrorIs(t, err, cache.ErrMiss)
	})

	t.Run("expiry", func(t *testing.T) {
		t.Parallel()
		c := &clock{now: time.Unix(1000, 0)}
		m := cache.NewMemory(4, cache.WithClock(c.Now))

		require.NoError(t, m.Set(ctx, "a", []byte("1"), time.Minute))
		c.Advance(59 * time.Second)
		_, err := m.Get(ctx, "a")
		require.NoError(t, err)

		c.Advance(time.Second)
		_, err = m.Get(ctx, "a")
		assert.ErrorIs(t, err, cache.ErrMiss)
		assert.Zero(t, m.Len())
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()
		m := cache.NewMemory(2)
		require.NoError(t, m.Set(ctx, "a", []byte("1"), 0))
		require.NoError(t, m.Set(ctx, "b", []byte("2"), 0))
		_, _ = m.Get(ctx, "a")
		require.NoError(t, m.Set(ctx, "c", []byte("3"), 0))

		_, err := m.Get(ctx, "b")
		assert.ErrorIs(t, err, cache.ErrMiss)
		_, err = m.Get(ctx, "a")
		assert.NoError(t, err)
		assert.Equal(t, 2, m.Len())
	})

	t.Run("overwrite refreshes ttl", func(t *testing.T) {
		t.Parallel()
		c := &clock{now: time.Unix(1000, 0)}
		m := cache.NewMemory(4, cache.WithClock(c.Now))
		require.NoError(t, m.Set(ctx, "a", []byte("1"), time.Minute))
		c.Advance(50 * time.Second)
		require.NoError(t, m.Set(ctx, "a", []byte("2"), time.Minute))
		c.Advance(50 * time.Second)

		v, err := m.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("2"), v)
	})
}

type profile struct {
	Name string `json:"name"`
}

func TestLoader(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("caches fetched value", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		l := cache.NewLoader[profile](cache.NewMemory(8), time.Minute, cache.WithPrefix("profile:"))
		fetch := func(context.Context) (profile, error) {
			calls.Add(1)
			return profile{Name: "alice"}, nil
		}

		for range 3 {
			p, err := l.Load(ctx, "alice", fetch)
			require.NoError(t, err)
			assert.Equal(t, "alice", p.Name)
		}
		assert.EqualValues(t, 1, calls.Load())

		require.NoError(t, l.Forget(ctx, "alice"))
		_, err := l.Load(ctx, "alice", fetch)
		require.NoError(t, err)
		assert.EqualValues(t, 2, calls.Load())
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		l := cache.NewLoader[profile](cache.NewMemory(8), time.Minute)
		notFound := errors.New("not found")
		fetch := func(context.Context) (profile, error) {
			calls.Add(1)
			return profile{}, notFound
		}

		_, err := l.Load(ctx, "ghost", fetch)
		assert.ErrorIs(t, err, notFound)
		_, err = l.Load(ctx, "ghost", fetch)
		assert.ErrorIs(t, err, notFound)
		assert.EqualValues(t, 2, calls.Load())
	})

	t.Run("concurrent loads share one fetch", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		release := make(chan struct{})
		l := cache.NewLoader[profile](cache.NewMemory(8), time.Minute)
		fetch := func(context.Context) (profile, error) {
			calls.Add(1)
			<-release
			return profile{Name: "bob"}, nil
		}

		const n = 10
		var wg sync.WaitGroup
		results := make([]string, n)
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				p, err := l.Load(ctx, "bob", fetch)
				assert.NoError(t, err)
				results[i] = p.Name
			}()
		}
		require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
		time.Sleep(10 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.LessOrEqual(t, calls.Load(), int32(2))
		for _, r := range results {
			assert.Equal(t, "bob", r)
		}
	})

	t.Run("broken cache falls back to fetch", func(t *testing.T) {
		t.Parallel()
		l := cache.NewLoader[profile](failingCache{}, time.Minute)
		p, err := l.Load(ctx, "x", func(context.Context) (profile, error) {
			return profile{Name: "x"}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "x", p.Name)
	})
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]byte, error) {
	return nil, fmt.Errorf("connection reset")
}

func (failingCache) Set(context.Context, string, []byte, time.Duration) error {
	return fmt.Errorf("connection reset")
}

func (failingCache) Delete(context.Context, string) error { return nil }
