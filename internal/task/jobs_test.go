package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"shop/internal/cache"
)

type fakePurger struct {
	cartBefore     time.Time
	favoriteBefore time.Time
	cartErr        error
	favoriteCalls  int
}

func (f *fakePurger) PurgeGuestCart(_ context.Context, before time.Time) (int64, error) {
	f.cartBefore = before
	return 2, f.cartErr
}

func (f *fakePurger) PurgeGuestFavorites(_ context.Context, before time.Time) (int64, error) {
	f.favoriteBefore = before
	f.favoriteCalls++
	return 1, nil
}

func TestGuestCleanupJobUsesRetention(t *testing.T) {
	now := time.Date(2025, 3, 31, 3, 0, 0, 0, time.UTC)
	purger := &fakePurger{}
	job := NewGuestCleanupJob(purger, 30)
	job.now = func() time.Time { return now }

	job.RunContext(context.Background())

	want := now.AddDate(0, 0, -30)
	if !purger.cartBefore.Equal(want) || !purger.favoriteBefore.Equal(want) {
		t.Fatalf("cutoff = %v/%v, want %v", purger.cartBefore, purger.favoriteBefore, want)
	}
}

func TestGuestCleanupJobContinuesAfterError(t *testing.T) {
	purger := &fakePurger{cartErr: errors.New("db down")}
	job := NewGuestCleanupJob(purger, 0)
	job.Run()
	if purger.favoriteCalls != 1 {
		t.Fatal("favorites purge should run even if cart purge fails")
	}
	if job.retention != 30*24*time.Hour {
		t.Fatalf("default retention = %v", job.retention)
	}
}

func TestSchedulerRegister(t *testing.T) {
	s := NewScheduler()
	if err := s.Register("0 3 * * *", NewGuestCleanupJob(&fakePurger{}, 7)); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := s.Register("*/5 * * * *", NewCacheCleanupJob(cache.NewMemory())); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := s.Register("not a schedule", NewGuestCleanupJob(&fakePurger{}, 7)); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
	if s.Entries() != 2 {
		t.Fatalf("entries = %d, want 2", s.Entries())
	}
	s.Start()
	s.Stop()
}
