package cache

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T, prefix string) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr:        mr.Addr(),
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	c := NewRedisCacheFromClient(client, prefix)
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	mr, c := newTestRedis(t, "test:")

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("v1"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v1" {
		t.Fatalf("Get(k) = %q, %v, %v", data, hit, err)
	}

	if !mr.Exists("test:k") {
		t.Errorf("key not stored under prefix, keys = %v", mr.Keys())
	}
	if mr.Exists("k") {
		t.Error("key stored without prefix")
	}
	if got := mr.TTL("test:k"); got != time.Hour {
		t.Errorf("TTL = %v, want 1h", got)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted entry should be a miss")
	}
}

func TestRedisCache_Expiry(t *testing.T) {
	ctx := context.Background()
	mr, c := newTestRedis(t, "test:")

	_ = c.Set(ctx, "short", []byte("1"), time.Minute)
	_ = c.Set(ctx, "forever", []byte("2"), 0)
	mr.FastForward(2 * time.Minute)

	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should be a miss")
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without TTL should survive")
	}
}

func TestRedisCache_ClearKeepsForeignKeys(t *testing.T) {
	ctx := context.Background()
	mr, c := newTestRedis(t, "test:")

	if err := mr.Set("other:keep", "1"); err != nil {
		t.Fatal(err)
	}
	if err := mr.Set("keep", "2"); err != nil {
		t.Fatal(err)
	}
	for i := range 20 {
		_ = c.Set(ctx, fmt.Sprintf("levels:%d", i), []byte("x"), time.Hour)
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if got, want := mr.Keys(), []string{"keep", "other:keep"}; !slices.Equal(got, want) {
		t.Errorf("keys after Clear = %v, want %v", got, want)
	}
}

func TestRedisCache_OpenFromURL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	c, err := Open(ctx, Config{Backend: BackendRedis, RedisURL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer c.Close()
	if _, ok := c.(*RedisCache); !ok {
		t.Fatalf("Open type = %T, want *RedisCache", c)
	}

	_ = c.Set(ctx, "k", []byte("v"), 0)
	if !mr.Exists(DefaultRedisPrefix + "k") {
		t.Errorf("key not stored under default prefix, keys = %v", mr.Keys())
	}
}

func TestRedisCache_NetworkErrorsAreRetryable(t *testing.T) {
	ctx := context.Background()
	mr, c := newTestRedis(t, "test:")
	mr.Close()

	_, _, err := c.Get(ctx, "k")
	if err == nil {
		t.Fatal("Get against a closed server should fail")
	}
	if !errors.Is(err, ErrNetwork) || !IsRetryable(err) {
		t.Errorf("Get error = %v, want retryable ErrNetwork", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), 0); !errors.Is(err, ErrNetwork) {
		t.Errorf("Set error = %v, want ErrNetwork", err)
	}
}

func TestRedisCache_CancelledContextNotWrapped(t *testing.T) {
	_, c := newTestRedis(t, "test:")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := c.Get(ctx, "k")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Get error = %v, want context.Canceled", err)
	}
	if IsRetryable(err) {
		t.Error("cancellation should not be retryable")
	}
}
