package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"salonadmin/internal/config"
	"salonadmin/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the three session entries under a shared key prefix so a
// console restart picks the session back up.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisClient creates a Redis client from config.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "salonadmin"
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisStore) key(name string) string {
	return fmt.Sprintf("%s:%s", r.prefix, name)
}

func (r *RedisStore) Load(ctx context.Context) (*Session, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}

	vals, err := r.client.MGet(ctx, r.key(KeyAccessToken), r.key(KeyRefreshToken), r.key(KeyUser)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load session from redis: %w", err)
	}

	access, _ := vals[0].(string)
	refresh, _ := vals[1].(string)
	if access == "" || refresh == "" {
		return nil, nil
	}

	s := &Session{AccessToken: access, RefreshToken: refresh}
	if raw, ok := vals[2].(string); ok && raw != "" {
		var user models.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stored user: %w", err)
		}
		s.User = &user
	}

	return s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := s.validate(); err != nil {
		return err
	}

	userData, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	// All three keys are written in one transaction so a crash cannot leave
	// a partial session behind.
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(KeyAccessToken), s.AccessToken, r.ttl)
	pipe.Set(ctx, r.key(KeyRefreshToken), s.RefreshToken, r.ttl)
	pipe.Set(ctx, r.key(KeyUser), userData, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session in redis: %w", err)
	}

	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := r.client.Del(ctx, r.key(KeyAccessToken), r.key(KeyRefreshToken), r.key(KeyUser)).Err(); err != nil {
		return fmt.Errorf("failed to clear session in redis: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}
