package cache

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// newTestRedis connects to the server named by ISOMERS_TEST_REDIS, or skips.
// Each test gets a unique key prefix so runs never collide; keys must be
// built with the returned keyer.
func newTestRedis(t *testing.T) (*RedisCache, func(string) string) {
	t.Helper()
	addr := os.Getenv("ISOMERS_TEST_REDIS")
	if addr == "" {
		t.Skip("ISOMERS_TEST_REDIS not set")
	}
	prefix := "isomers-test:" + uuid.NewString() + ":"
	c, err := NewRedisCache(context.Background(), RedisOptions{
		Addr:   addr,
		Prefix: prefix,
	})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	t.Cleanup(func() {
		_, _ = c.Clear(context.Background())
		c.Close()
	})
	return c, func(k string) string { return prefix + k }
}

func TestRedisCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, key := newTestRedis(t)

	if _, hit, err := c.Get(ctx, key("missing")); hit || err != nil {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, key("k"), []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key("k"))
	if err != nil || !hit || string(data) != "v" {
		t.Fatalf("Get = %q, hit %v, err %v", data, hit, err)
	}
	if err := c.Delete(ctx, key("k")); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key("k")); hit {
		t.Error("entry should be gone after Delete")
	}
}

func TestRedisCacheClear(t *testing.T) {
	ctx := context.Background()
	c, key := newTestRedis(t)

	for _, k := range []string{"a", "b"} {
		if err := c.Set(ctx, key(k), []byte(k), 0); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 2 {
		t.Errorf("Clear removed %d keys, want 2", n)
	}
}

func TestNewRedisCacheRequiresAddr(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), RedisOptions{}); err == nil {
		t.Error("expected error for empty address")
	}
}

func TestClassify(t *testing.T) {
	if classify(nil) != nil {
		t.Error("classify(nil) should be nil")
	}
	if err := classify(redis.Nil); !errors.Is(err, redis.Nil) || IsRetryable(err) {
		t.Errorf("redis.Nil should pass through, got %v", err)
	}
	if err := classify(io.EOF); !IsRetryable(err) || !errors.Is(err, ErrNetwork) {
		t.Errorf("io.EOF should be retryable network error, got %v", err)
	}
	if err := classify(redis.ErrClosed); err != ErrClosed {
		t.Errorf("closed client should map to ErrClosed, got %v", err)
	}
	proto := errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")
	if err := classify(proto); err != proto {
		t.Errorf("protocol errors should pass through, got %v", err)
	}
}
