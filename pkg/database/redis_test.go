package database

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/interviewprep-api/internal/config"
)

func TestRedisOptions(t *testing.T) {
	_, err := redisOptions(config.RedisConfig{})
	assert.Error(t, err, "Без адресов клиент не создается")

	_, err = redisOptions(config.RedisConfig{Mode: "sentinel", Addr: "localhost:26379"})
	assert.Error(t, err, "Sentinel требует MasterName")

	_, err = redisOptions(config.RedisConfig{Mode: "ring", Addr: "localhost:6379"})
	assert.Error(t, err)

	opts, err := redisOptions(config.RedisConfig{Addrs: []string{"a:6379", "b:6379"}, DB: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"a:6379"}, opts.Addrs, "В режиме single используется первый адрес")
	assert.Equal(t, 2, opts.DB)

	opts, err = redisOptions(config.RedisConfig{Mode: "cluster", Addrs: []string{"a:6379", "b:6379"}})
	require.NoError(t, err)
	assert.Len(t, opts.Addrs, 2)
}

func TestNewUniversalRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewUniversalRedisClient(t.Context(), config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	assert.NoError(t, client.Set(t.Context(), "k", "v", 0).Err())

	mr.Close()
	_, err = NewUniversalRedisClient(t.Context(), config.RedisConfig{Addr: mr.Addr()})
	assert.Error(t, err, "Недоступный Redis возвращает ошибку")
}
