package lib

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// GetRedisClient prefers REDIS_URL; falls back to host/password/db vars for
// local compose setups without a url.
func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	if url := os.Getenv("REDIS_URL"); url != "" {
		opt, err := redis.ParseURL(url)
		if err != nil {
			log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
			return nil
		}
		redisClient = redis.NewClient(opt)
		return redisClient
	}
	dbIndex, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisClient = redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_HOST"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       dbIndex,
	})
	return redisClient
}

func PingRedis(ctx context.Context) error {
	rdb := GetRedisClient()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[redis] Ping failed: %s\n", err.Error())
		return err
	}
	return nil
}

// NewRedisClient Replace redis instance with custom client implementation
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}
