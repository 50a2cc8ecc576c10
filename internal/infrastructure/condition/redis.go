package condition

import (
	"context"
	"strconv"

	"github.com/DRSN-tech/product-registry/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/redis/go-redis/v9"
)

type setMemberChecker interface {
	SIsMember(ctx context.Context, key string, member interface{}) *redis.BoolCmd
}

// RedisCondition считает условие выполненным, если параметр входит в множество key.
type RedisCondition struct {
	client setMemberChecker
	key    string
}

func NewRedisCondition(client setMemberChecker, key string) *RedisCondition {
	return &RedisCondition{
		client: client,
		key:    key,
	}
}

func (r *RedisCondition) VerifyCondition(ctx context.Context, param int64) (bool, error) {
	ok, err := r.client.SIsMember(ctx, r.key, strconv.FormatInt(param, 10)).Result()
	if err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return ok, nil
}
