package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	redisOnce sync.Once
	redisConn *redis.Client
)

// NewRedis returns a client to an in-process miniredis shared by every scenario.
// Rate limit buckets live here, as they would in production.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisConn = redis.NewClient(&redis.Options{Addr: server.Addr()})
	})
	return redisConn
}

// ClearRedis drops every rate limit bucket.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.Background()).Err()
}
