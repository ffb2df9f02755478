package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webnotes/notesweb/pkg/store"
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

func TestStore_Freshness(t *testing.T) {
	t.Parallel()

	c := &clock{now: time.Unix(0, 0)}
	s := store.New[string, int](store.WithTTL(time.Minute), store.WithClock(c.Now))

	_, ok := s.Get("k")
	assert.False(t, ok)

	s.Set("k", 1)
	v, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	c.Advance(time.Minute)
	_, ok = s.Get("k")
	assert.False(t, ok)

	s.Set("k", 2)
	s.Invalidate("k")
	_, ok = s.Get("k")
	assert.False(t, ok)
}

func TestStore_DropsExpired(t *testing.T) {
	t.Parallel()

	c := &clock{now: time.Unix(0, 0)}
	s := store.New[string, int](store.WithTTL(time.Minute), store.WithClock(c.Now))

	s.Set("read", 1)
	s.Set("old-1", 1)
	s.Set("old-2", 1)
	require.Equal(t, 3, s.Len())

	c.Advance(time.Minute)
	_, ok := s.Get("read")
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())

	s.Set("new", 2)
	assert.Equal(t, 1, s.Len())
	v, ok := s.Get("new")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	c.Advance(30 * time.Second)
	s.Set("newer", 3)
	assert.Equal(t, 2, s.Len())
}

func TestStore_Load(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("uses fresh value", func(t *testing.T) {
		t.Parallel()
		s := store.New[string, int]()
		var calls atomic.Int32
		fetch := func(context.Context) (int, error) {
			calls.Add(1)
			return 7, nil
		}

		for range 3 {
			v, err := s.Load(ctx, "k", false, fetch)
			require.NoError(t, err)
			assert.Equal(t, 7, v)
		}
		assert.EqualValues(t, 1, calls.Load())

		_, err := s.Load(ctx, "k", true, fetch)
		require.NoError(t, err)
		assert.EqualValues(t, 2, calls.Load())
	})

	t.Run("failed fetch keeps old value", func(t *testing.T) {
		t.Parallel()
		s := store.New[string, int]()
		s.Set("k", 1)

		boom := errors.New("boom")
		_, err := s.Load(ctx, "k", true, func(context.Context) (int, error) { return 0, boom })
		assert.ErrorIs(t, err, boom)

		v, ok := s.Get("k")
		require.True(t, ok)
		assert.Equal(t, 1, v)
	})

	t.Run("deduplicates concurrent loads", func(t *testing.T) {
		t.Parallel()
		s := store.New[string, int]()
		var calls atomic.Int32
		release := make(chan struct{})
		fetch := func(context.Context) (int, error) {
			calls.Add(1)
			<-release
			return 3, nil
		}

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := s.Load(ctx, "k", false, fetch)
				assert.NoError(t, err)
				assert.Equal(t, 3, v)
			}()
		}
		require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
		time.Sleep(10 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.EqualValues(t, 1, calls.Load())
	})
}

func TestStore_Update(t *testing.T) {
	t.Parallel()

	s := store.New[string, []string]()

	s.Update("k", func(v []string, ok bool) ([]string, bool) {
		assert.False(t, ok)
		return nil, false
	})
	_, ok := s.Get("k")
	assert.False(t, ok)

	s.Set("k", []string{"a"})
	s.Update("k", func(v []string, ok bool) ([]string, bool) {
		assert.True(t, ok)
		return append(v, "b"), true
	})

	v, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, v)
}

func TestStore_Subscribe(t *testing.T) {
	t.Parallel()

	t.Run("receives updates", func(t *testing.T) {
		t.Parallel()
		s := store.New[string, int]()
		ch, cancel := s.Subscribe("k")
		defer cancel()

		s.Set("k", 1)
		assert.Equal(t, 1, <-ch)

		s.Update("k", func(v int, _ bool) (int, bool) { return v + 1, true })
		assert.Equal(t, 2, <-ch)
	})

	t.Run("slow subscriber sees latest only", func(t *testing.T) {
		t.Parallel()
		s := store.New[string, int]()
		ch, cancel := s.Subscribe("k")
		defer cancel()

		for i := range 100 {
			s.Set("k", i)
		}
		assert.Equal(t, 99, <-ch)
		select {
		case v := <-ch:
			t.Fatalf("unexpected value %d", v)
		default:
		}
	})

	t.Run("other keys are not delivered", func(t *testing.T) {
		t.Parallel()
		s := store.New[string, int]()
		ch, cancel := s.Subscribe("a")
		defer cancel()

		s.Set("b", 1)
		select {
		case v := <-ch:
			t.Fatalf("unexpected value %d", v)
		default:
		}
	})

	t.Run("cancel closes channel", func(t *testing.T) {
		t.Parallel()
		s := store.New[string, int]()
		ch, cancel := s.Subscribe("k")
		cancel()
		cancel()

		_, open := <-ch
		assert.False(t, open)
		s.Set("k", 1)
	})
}

func TestKeyForToken(t *testing.T) {
	t.Parallel()

	a := store.KeyForToken("token-a")
	assert.Len(t, string(a), 64)
	assert.Equal(t, a, store.KeyForToken("token-a"))
	assert.NotEqual(t, a, store.KeyForToken("token-b"))
	assert.NotContains(t, string(a), "token")
}
