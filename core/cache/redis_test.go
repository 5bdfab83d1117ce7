package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client), mr
}

type cached struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestRedisCacheGetSet(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	var got cached
	hit, err := c.Get(ctx, "k", &got)
	if err != nil || hit {
		t.Fatalf("expected miss, got hit=%v err=%v", hit, err)
	}

	if err := c.Set(ctx, "k", cached{Name: "dune", Count: 2}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	hit, err = c.Get(ctx, "k", &got)
	if err != nil || !hit {
		t.Fatalf("expected hit, got hit=%v err=%v", hit, err)
	}
	if got.Name != "dune" || got.Count != 2 {
		t.Fatalf("unexpected value %+v", got)
	}

	mr.FastForward(2 * time.Minute)
	hit, _ = c.Get(ctx, "k", &got)
	if hit {
		t.Fatal("expected expiry after ttl")
	}
}

func TestRedisCacheCorruptValueIsMiss(t *testing.T) {
	c, mr := newTestCache(t)
	if err := mr.Set("bad", "{not json"); err != nil {
		t.Fatal(err)
	}
	var got cached
	hit, err := c.Get(context.Background(), "bad", &got)
	if err != nil || hit {
		t.Fatalf("want miss without error, got hit=%v err=%v", hit, err)
	}
}

func TestRedisCacheVersion(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	v, err := c.GetVersion(ctx, "version:games")
	if err != nil || v != 0 {
		t.Fatalf("want 0, got %d err=%v", v, err)
	}
	for want := int64(1); want <= 3; want++ {
		got, err := c.IncrVersion(ctx, "version:games")
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("want %d, got %d", want, got)
		}
	}
	v, _ = c.GetVersion(ctx, "version:games")
	if v != 3 {
		t.Fatalf("want 3, got %d", v)
	}
}

func TestNoopCache(t *testing.T) {
	c := NewNoopCache()
	ctx := context.Background()
	_ = c.Set(ctx, "k", 1, time.Minute)
	var n int
	if hit, _ := c.Get(ctx, "k", &n); hit {
		t.Fatal("noop cache must never hit")
	}
}
