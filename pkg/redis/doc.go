// Package redis connects to Redis with retries, exposes a readiness check,
// and implements the public page cache on top of go-redis.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	pages := redis.NewCache(client, cfg.KeyPrefix)
package redis
