// Package ratelimiter implements token-bucket rate limiting with an
// in-memory store and an HTTP middleware.
//
// The BFF guards its login, registration and username lookup endpoints
// with a per-client-IP bucket:
//
//	b, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), cfg)
//	r.With(ratelimiter.Middleware(b, ratelimiter.Composite(ratelimiter.ByIP(), ratelimiter.ByPath()))).
//		Post("/auth/login", login)
package ratelimiter
