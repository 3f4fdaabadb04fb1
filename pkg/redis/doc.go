// Package redis connects to Redis with retries and exposes a health probe.
// The client backs flash.RedisStore when REDIS_URL is set.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//	store := flash.NewRedisStore(client, cookies)
package redis
