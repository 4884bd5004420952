package store

import (
	"testing"

	"github.com/redis/go-redis/v9"
)

// unreachableClient points at a port nothing listens on, so calls fail
// fast with a connection error instead of hanging.
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
}

func TestRedisVisitedSet_SeenDefaultsToFalseOnError(t *testing.T) {
	v := NewRedisVisitedSet(unreachableClient(), "crossgen:visited:test")
	if v.Seen("some-signature") {
		t.Error("expected Seen to report false when the Redis call fails, not panic or report true")
	}
}

func TestRedisVisitedSet_MarkDoesNotPanicOnError(t *testing.T) {
	v := NewRedisVisitedSet(unreachableClient(), "crossgen:visited:test")
	v.Mark("some-signature")
}
