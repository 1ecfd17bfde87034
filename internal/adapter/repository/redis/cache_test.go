package redis

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestCacheSetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	payload := []byte(`{"company_id":"co-1","rows":[]}`)
	if err := cache.Set(ctx, "report:tb:co-1", payload, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, err := cache.Get(ctx, "report:tb:co-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if !bytes.Equal(val, payload) {
		t.Fatalf("expected %s, got %s", payload, val)
	}
}

func TestCacheGetMiss(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)

	val, err := cache.Get(context.Background(), "never-set")
	if err != nil {
		t.Fatalf("a miss must not be an error, got %v", err)
	}
	if val != nil {
		t.Fatalf("expected nil on miss, got %s", val)
	}
}

func TestCacheDelete(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "foo", []byte("bar"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if err := cache.Delete(ctx, "foo"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	val, err := cache.Get(ctx, "foo")
	if err != nil || val != nil {
		t.Fatalf("expected a miss after delete, got val=%s err=%v", val, err)
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "short", []byte("lived"), time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	val, err := cache.Get(ctx, "short")
	if err != nil || val != nil {
		t.Fatalf("expected expiry after TTL, got val=%s err=%v", val, err)
	}
}
