package cache

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Tech-Care-Rwanda/tech-care-sub001/internal/config"
)

// NewRedis connects to Redis. The cache is best-effort: a failed ping
// is logged but does not stop the server, callers must tolerate misses.
func NewRedis(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable at %s: %v", cfg.RedisAddr, err)
	}

	return client
}
