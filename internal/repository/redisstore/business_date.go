package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

// kv is the slice of *redis.Client the store uses.
type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// BusinessDateStore keeps the operator-set business date so a restarted
// register resumes on the same day.
type BusinessDateStore struct {
	client kv
	key    string
}

// Connect parses url, opens a client and checks it answers.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// NewBusinessDateStore stores the date under "<prefix>:business_date".
func NewBusinessDateStore(client kv, prefix string) *BusinessDateStore {
	if prefix == "" {
		prefix = "cafepos"
	}
	return &BusinessDateStore{client: client, key: prefix + ":business_date"}
}

// LoadBusinessDate returns the last saved date, or models.ErrNotFound.
func (s *BusinessDateStore) LoadBusinessDate(ctx context.Context) (models.EffectiveDate, error) {
	raw, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return models.EffectiveDate{}, models.ErrNotFound
	}
	if err != nil {
		return models.EffectiveDate{}, fmt.Errorf("failed to read %s: %w", s.key, err)
	}
	return models.ParseEffectiveDate(raw)
}

// SaveBusinessDate overwrites the stored date. The key never expires.
func (s *BusinessDateStore) SaveBusinessDate(ctx context.Context, date models.EffectiveDate) error {
	if err := s.client.Set(ctx, s.key, date.String(), 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.key, err)
	}
	return nil
}
