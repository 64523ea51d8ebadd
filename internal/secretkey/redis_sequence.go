package secretkey

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "printdesk:secret_key_seq"

// RedisSequence reserves numbers with INCR, so concurrent callers across
// processes never share one.
type RedisSequence struct {
	client redis.Cmdable
	key    string
}

func NewRedisSequence(client redis.Cmdable, key string) *RedisSequence {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSequence{client: client, key: key}
}

func (s *RedisSequence) Next(ctx context.Context) (int64, error) {
	return s.client.Incr(ctx, s.key).Result()
}
