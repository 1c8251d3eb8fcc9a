package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisServer *miniredis.Miniredis
var redisConn *redis.Client

// NewRedis returns a client connected to a shared in-process Redis server.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		var err error
		redisServer, err = miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisConn = redis.NewClient(&redis.Options{Addr: redisServer.Addr()})
	})
	return redisConn
}

// RedisKeys lists the keys currently stored on the shared server.
func RedisKeys() []string {
	if redisServer == nil {
		return nil
	}
	return redisServer.Keys()
}

// ClearRedis removes every key.
func ClearRedis(rdb *redis.Client) error {
	return rdb.FlushAll(context.Background()).Err()
}
