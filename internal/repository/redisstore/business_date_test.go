package redisstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/cafepos/internal/domain/models"
)

type memKV struct {
	values map[string]string
	err    error
}

func (m *memKV) Get(_ context.Context, key string) *redis.StringCmd {
	if m.err != nil {
		return redis.NewStringResult("", m.err)
	}
	v, ok := m.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memKV) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	if m.err != nil {
		return redis.NewStatusResult("", m.err)
	}
	m.values[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func TestBusinessDateRoundTrip(t *testing.T) {
	kv := &memKV{values: map[string]string{}}
	store := NewBusinessDateStore(kv, "")

	_, err := store.LoadBusinessDate(context.Background())
	assert.ErrorIs(t, err, models.ErrNotFound)

	date := models.EffectiveDate{Year: 2024, Month: time.February, Day: 29}
	require.NoError(t, store.SaveBusinessDate(context.Background(), date))
	assert.Equal(t, "2024-02-29", kv.values["cafepos:business_date"])

	got, err := store.LoadBusinessDate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, date, got)
}

func TestBusinessDateErrors(t *testing.T) {
	kv := &memKV{values: map[string]string{"till:business_date": "yesterday"}}
	store := NewBusinessDateStore(kv, "till")

	_, err := store.LoadBusinessDate(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrNotFound)

	kv.err = errors.New("connection reset")
	assert.Error(t, store.SaveBusinessDate(context.Background(), models.EffectiveDate{Year: 2024, Month: time.June, Day: 1}))
}
