package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists each cart as a JSON blob under cart:<session>. The TTL
// matches abandoned-cart retention: untouched carts expire after 30 days.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, ttl: 30 * 24 * time.Hour}
}

func (s *RedisStore) Load(ctx context.Context, session string) (Cart, error) {
	data, err := s.client.Get(ctx, cartKey(session)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Cart{}, ErrNotFound
	}
	if err != nil {
		return Cart{}, fmt.Errorf("redis get failed: %w", err)
	}
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return Cart{}, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return c, nil
}

func (s *RedisStore) Save(ctx context.Context, session string, c Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := s.client.Set(ctx, cartKey(session), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, session string) error {
	if err := s.client.Del(ctx, cartKey(session)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cartKey(session string) string {
	return fmt.Sprintf("cart:%s", session)
}
