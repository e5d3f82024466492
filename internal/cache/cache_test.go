package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "a", "1", time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := c.Set(ctx, "b", "2", 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	if v, ok, _ := c.Get(ctx, "a"); !ok || v != "1" {
		t.Fatalf("expected hit for a, got %q %v", v, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Fatal("expected a to expire")
	}
	if v, ok, _ := c.Get(ctx, "b"); !ok || v != "2" {
		t.Fatalf("key without expiry should survive, got %q %v", v, ok)
	}

	if err := c.Delete(ctx, "b"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "b"); ok {
		t.Fatal("expected b to be deleted")
	}
}

func TestMemoryCacheCleanup(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	now := time.Now()
	c.now = func() time.Time { return now }
	_ = c.Set(ctx, "short", "x", time.Second)
	_ = c.Set(ctx, "long", "y", time.Hour)

	now = now.Add(time.Minute)
	if removed := c.Cleanup(); removed != 1 {
		t.Fatalf("Cleanup removed %d, want 1", removed)
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	c := NewWithFallback(ctx, nil)
	if TypeOf(c) != KindMemory {
		t.Fatalf("nil client should fall back to memory, got %s", TypeOf(c))
	}

	type brand struct {
		Name string `json:"name"`
	}
	var got []brand
	hit, err := GetJSON(ctx, c, KeyBrands, &got)
	if err != nil || hit {
		t.Fatalf("expected miss, got hit=%v err=%v", hit, err)
	}

	if err := SetJSON(ctx, c, KeyBrands, []brand{{Name: "Zara"}}, time.Minute); err != nil {
		t.Fatalf("SetJSON error: %v", err)
	}
	hit, err = GetJSON(ctx, c, KeyBrands, &got)
	if err != nil || !hit {
		t.Fatalf("expected hit, got hit=%v err=%v", hit, err)
	}
	if len(got) != 1 || got[0].Name != "Zara" {
		t.Fatalf("unexpected value %+v", got)
	}

	if NewRedisClient("  ", "", 0) != nil {
		t.Fatal("empty address should not create a client")
	}
}
