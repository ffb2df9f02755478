package store

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a value stays fresh.
const DefaultTTL = 5 * time.Minute

type item[V any] struct {
	value   V
	fetched time.Time
}

// Store is a keyed, in-memory value cache with freshness, deduplicated
// loading and change subscriptions. The zero value is not usable; build
// one with New.
type Store[K ~string, V any] struct {
	mu    sync.Mutex
	items map[K]item[V]
	subs  map[K]map[*subscriber[V]]struct{}
	group singleflight.Group
	ttl   time.Duration
	now   func() time.Time
	swept time.Time
}

type Option func(*options)

type options struct {
	ttl time.Duration
	now func() time.Time
}

func WithTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.ttl = d
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func New[K ~string, V any](opts ...Option) *Store[K, V] {
	o := options{ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[K, V]{
		items: make(map[K]item[V]),
		subs:  make(map[K]map[*subscriber[V]]struct{}),
		ttl:   o.ttl,
		now:   o.now,
		swept: o.now(),
	}
}

// Get returns the value for key if it is still fresh.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fresh(key)
}

// Len reports how many values are held, stale ones included until they
// are dropped.
func (s *Store[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Must be called with the lock held. An expired value is dropped.
func (s *Store[K, V]) fresh(key K) (V, bool) {
	var zero V
	it, ok := s.items[key]
	if !ok {
		return zero, false
	}
	if s.now().Sub(it.fetched) >= s.ttl {
		delete(s.items, key)
		return zero, false
	}
	return it.value, true
}

// put stores v and, at most once per TTL, drops every expired value so
// keys that are never read again do not accumulate. Must be called with
// the lock held.
func (s *Store[K, V]) put(key K, v V) {
	now := s.now()
	if now.Sub(s.swept) >= s.ttl {
		for k, it := range s.items {
			if now.Sub(it.fetched) >= s.ttl {
				delete(s.items, k)
			}
		}
		s.swept = now
	}
	s.items[key] = item[V]{value: v, fetched: now}
}

// Set stores v and notifies subscribers.
func (s *Store[K, V]) Set(key K, v V) {
	s.mu.Lock()
	s.put(key, v)
	subs := s.snapshot(key)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.send(v)
	}
}

// Load returns the fresh value for key, or calls fetch when there is none
// or force is set. Concurrent loads of one key share one fetch, which runs
// with the first caller's context. Failed fetches leave the store as is.
func (s *Store[K, V]) Load(ctx context.Context, key K, force bool, fetch func(context.Context) (V, error)) (V, error) {
	if !force {
		if v, ok := s.Get(key); ok {
			return v, nil
		}
	}

	res, err, _ := s.group.Do(string(key), func() (any, error) {
		v, err := fetch(ctx)
		if err != nil {
			return v, err
		}
		s.Set(key, v)
		return v, nil
	})
	v, _ := res.(V)
	return v, err
}

// Update applies fn to the current value of key. fn receives whether a
// fresh value exists and reports whether its result should be stored.
// Stored results reset freshness and notify subscribers.
func (s *Store[K, V]) Update(key K, fn func(v V, ok bool) (V, bool)) {
	s.mu.Lock()
	cur, ok := s.fresh(key)
	next, store := fn(cur, ok)
	if !store {
		s.mu.Unlock()
		return
	}
	s.put(key, next)
	subs := s.snapshot(key)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.send(next)
	}
}

// Invalidate drops the value for key. Subscribers stay attached.
func (s *Store[K, V]) Invalidate(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

// Subscribe returns a channel that receives every value stored for key
// from now on, and a cancel func that closes it. A subscriber that falls
// behind only sees the latest value.
func (s *Store[K, V]) Subscribe(key K) (<-chan V, func()) {
	sub := &subscriber[V]{ch: make(chan V, 1)}

	s.mu.Lock()
	if s.subs[key] == nil {
		s.subs[key] = make(map[*subscriber[V]]struct{})
	}
	s.subs[key][sub] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs[key], sub)
			if len(s.subs[key]) == 0 {
				delete(s.subs, key)
			}
			s.mu.Unlock()
			sub.close()
		})
	}
	return sub.ch, cancel
}

// Must be called with the lock held.
func (s *Store[K, V]) snapshot(key K) []*subscriber[V] {
	set := s.subs[key]
	if len(set) == 0 {
		return nil
	}
	out := make([]*subscriber[V], 0, len(set))
	for sub := range set {
		out = append(out, sub)
	}
	return out
}

type subscriber[V any] struct {
	mu     sync.Mutex
	ch     chan V
	closed bool
}

// send never blocks: a pending unread value is replaced by v.
func (s *subscriber[V]) send(v V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case <-s.ch:
	default:
	}
	s.ch <- v
}

func (s *subscriber[V]) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}
