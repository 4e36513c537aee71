// file: database/redis.go
package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/xFraylin/Hackong-ctf/config"
)

// InitRedis builds the redis client used for the ranking cache and password
// reset tokens, failing fast when the server is unreachable.
func InitRedis(cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
		PoolSize: 100,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	log.Println("Redis connection established.")
	return rdb, nil
}
