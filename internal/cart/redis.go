package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps the cart in redis, for deployments where local files
// do not survive (containers). TTL is long; an abandoned cart eventually
// expires instead of living forever.
type RedisStorage struct {
	client  *redis.Client
	owner   string
	baseTTL time.Duration
}

func NewRedisStorage(client *redis.Client, owner string) *RedisStorage {
	return &RedisStorage{
		client:  client,
		owner:   owner,
		baseTTL: 30 * 24 * time.Hour,
	}
}

func (r *RedisStorage) Load(ctx context.Context) ([]Line, error) {
	data, err := r.client.Get(ctx, r.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return lines, nil
}

func (r *RedisStorage) Save(ctx context.Context, lines []Line) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(60)) * time.Minute
	if err := r.client.Set(ctx, r.key(), string(data), r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key()).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) key() string {
	return fmt.Sprintf("cart:%s", r.owner)
}
