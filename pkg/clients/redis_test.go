package clients

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/product-registry/internal/cfg"
	"github.com/stretchr/testify/require"
)

func TestRedisOptions(t *testing.T) {
	opts := redisOptions(&cfg.RedisCfg{
		Addr:        "redis:6379",
		User:        "registry",
		Password:    "secret",
		DB:          2,
		MaxRetries:  4,
		DialTimeout: time.Second,
		Timeout:     3 * time.Second,
	})

	require.Equal(t, "redis:6379", opts.Addr)
	require.Equal(t, "registry", opts.Username)
	require.Equal(t, "secret", opts.Password)
	require.Equal(t, 2, opts.DB)
	require.Equal(t, 4, opts.MaxRetries)
	require.Equal(t, time.Second, opts.DialTimeout)
	require.Equal(t, 3*time.Second, opts.ReadTimeout)
	require.Equal(t, 3*time.Second, opts.WriteTimeout)
}

func TestRedisClient_PingUnreachable(t *testing.T) {
	client := NewRedisClient(&cfg.RedisCfg{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		Timeout:     100 * time.Millisecond,
	})
	t.Cleanup(func() { _ = client.Close(context.Background()) })

	err := client.Ping(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "redis 127.0.0.1:1")
}
