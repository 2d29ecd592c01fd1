// internal/db/redis.go
package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisDB struct {
	Client *redis.Client
}

func NewRedisDB(redisURL string) (*RedisDB, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Println("[Redis] ✅ Connected to Redis")
	return &RedisDB{Client: client}, nil
}

func (r *RedisDB) Close() {
	if r.Client != nil {
		r.Client.Close()
		log.Println("[Redis] Connection closed")
	}
}

// OAuth state management. States are single-use nonces with a short TTL,
// consumed exactly once during the callback.

func (r *RedisDB) SetOAuthState(ctx context.Context, state, intent string, expiration time.Duration) error {
	return r.Client.Set(ctx, "oauth_state:"+state, intent, expiration).Err()
}

func (r *RedisDB) ConsumeOAuthState(ctx context.Context, state string) (string, bool, error) {
	intent, err := r.Client.GetDel(ctx, "oauth_state:"+state).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return intent, true, nil
}
