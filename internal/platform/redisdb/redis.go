package redisdb

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// Connect returns a redis client used for the rate-limit counters.
func Connect(addr, password string, db int) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	return rdb
}
