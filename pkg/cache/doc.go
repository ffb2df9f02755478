// Package cache holds the public page cache: a small byte-oriented Cache
// interface, an in-process LRU implementation with per-entry expiry, and a
// typed Loader that deduplicates concurrent fetches with singleflight.
//
// Public profiles and published notes are read through a Loader:
//
//	profiles := cache.NewLoader[backend.User](cache.NewMemory(512), time.Minute,
//		cache.WithPrefix("profile:"))
//	u, err := profiles.Load(ctx, username, func(ctx context.Context) (backend.User, error) {
//		return client.PublicProfile(ctx, username)
//	})
//
// pkg/redis provides a Cache backed by Redis for multi-instance deployments.
package cache
