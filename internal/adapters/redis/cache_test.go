package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	redisad "tourflow/internal/adapters/redis"
	"tourflow/internal/domain"
)

func TestCache_RoundTripAndDel(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	d := domain.Destination{ID: 7, Title: "Santorini", Location: "Greece", Price: 1200, Rating: 4.5, IsActive: true}
	if err := c.Set(ctx, "destination:7", d, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got domain.Destination
	ok, err := c.Get(ctx, "destination:7", &got)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Title != "Santorini" || got.Rating != 4.5 {
		t.Fatalf("unexpected cached value: %+v", got)
	}

	if err := c.Del(ctx, "destination:7"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, err = c.Get(ctx, "destination:7", &got)
	if err != nil {
		t.Fatalf("get after del: %v", err)
	}
	if ok {
		t.Fatalf("expected miss after del")
	}
}

func TestCache_MissOnUnknownKey(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)

	var dst domain.Destination
	ok, err := c.Get(context.Background(), "destination:404", &dst)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected miss")
	}
}
