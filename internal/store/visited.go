package store

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisVisitedSet shares visited grid signatures across concurrent
// search workers via a Redis set, so two workers racing the same
// dictionary never explore the same dead branch twice. It satisfies
// search.VisitedSet structurally; store does not import search to
// avoid a dependency cycle.
type RedisVisitedSet struct {
	client *redis.Client
	key    string
	ctx    context.Context
}

// NewRedisVisitedSet returns a VisitedSet backed by the Redis set at
// key.
func NewRedisVisitedSet(client *redis.Client, key string) *RedisVisitedSet {
	return &RedisVisitedSet{client: client, key: key, ctx: context.Background()}
}

func (r *RedisVisitedSet) Seen(signature string) bool {
	ok, err := r.client.SIsMember(r.ctx, r.key, signature).Result()
	if err != nil {
		return false
	}
	return ok
}

func (r *RedisVisitedSet) Mark(signature string) {
	r.client.SAdd(r.ctx, r.key, signature)
}
