package clients

import (
	"context"

	"github.com/DRSN-tech/product-registry/internal/cfg"
	"github.com/DRSN-tech/product-registry/pkg/e"
	r "github.com/redis/go-redis/v9"
)

// RedisClient - подключение к Redis, где хранится множество подтверждённых параметров.
// Команды go-redis доступны напрямую через встроенный клиент.
type RedisClient struct {
	*r.Client
	addr string
}

func NewRedisClient(cfg *cfg.RedisCfg) *RedisClient {
	return &RedisClient{
		Client: r.NewClient(redisOptions(cfg)),
		addr:   cfg.Addr,
	}
}

// redisOptions переносит настройки из конфигурации. Таймауты чтения и записи общие.
func redisOptions(cfg *cfg.RedisCfg) *r.Options {
	return &r.Options{
		Addr:         cfg.Addr,
		Username:     cfg.User,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	}
}

// Ping проверяет доступность сервера. В тексте ошибки указывается адрес.
func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return e.Wrap("redis "+c.addr, err)
	}

	return nil
}

// Close закрывает пул соединений. Сигнатура подходит для closer.
func (c *RedisClient) Close(_ context.Context) error {
	return c.Client.Close()
}
