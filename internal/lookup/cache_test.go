package lookup

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/erazemk/pantryscan/internal/model"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

type countingSource struct {
	calls   int
	product *model.Product
	err     error
}

func (s *countingSource) Lookup(ctx context.Context, barcode string) (*model.Product, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	p := *s.product
	p.Barcode = barcode
	return &p, nil
}

func TestRedisCacheServesRepeatLookups(t *testing.T) {
	client := getRedisClient(t)
	ctx := context.Background()
	barcode := "test-" + time.Now().Format("150405.000000")
	client.Del(ctx, cacheKey(barcode))
	t.Cleanup(func() { client.Del(ctx, cacheKey(barcode)) })

	src := &countingSource{product: &model.Product{Name: "Oats", Quantity: "500 g"}}
	cache := NewRedisCache(src, client, time.Minute)

	for range 3 {
		p, err := cache.Lookup(ctx, barcode)
		if err != nil {
			t.Fatalf("Lookup: %v", err)
		}
		if p.Name != "Oats" || p.Barcode != barcode {
			t.Fatalf("unexpected product %+v", p)
		}
	}
	if src.calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", src.calls)
	}

	ttl := client.TTL(ctx, cacheKey(barcode)).Val()
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("unexpected ttl %v", ttl)
	}

	if err := cache.Invalidate(ctx, barcode); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Lookup(ctx, barcode); err != nil {
		t.Fatal(err)
	}
	if src.calls != 2 {
		t.Errorf("expected refetch after invalidate, got %d calls", src.calls)
	}
}

func TestRedisCacheDoesNotStoreMisses(t *testing.T) {
	client := getRedisClient(t)
	ctx := context.Background()
	barcode := "missing-" + time.Now().Format("150405.000000")

	src := &countingSource{err: ErrNotFound}
	cache := NewRedisCache(src, client, time.Minute)

	for range 2 {
		if _, err := cache.Lookup(ctx, barcode); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	}
	if src.calls != 2 {
		t.Errorf("expected every miss to reach upstream, got %d calls", src.calls)
	}
	if n := client.Exists(ctx, cacheKey(barcode)).Val(); n != 0 {
		t.Errorf("expected no cache entry, found %d", n)
	}
}

func TestRedisCacheFallsThroughWhenRedisIsDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	src := &countingSource{product: &model.Product{Name: "Tea"}}
	p, err := NewRedisCache(src, client, 0).Lookup(context.Background(), "42")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if p.Name != "Tea" || src.calls != 1 {
		t.Fatalf("expected upstream result, got %+v after %d calls", p, src.calls)
	}
}
