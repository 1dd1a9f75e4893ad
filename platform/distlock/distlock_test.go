package distlock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLock(t *testing.T) (*Lock, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client, "opportunities:distribute:lock", time.Minute), mr
}

func TestAcquireIsExclusive(t *testing.T) {
	lock, _ := newTestLock(t)
	ctx := context.Background()

	release, ok, err := lock.Acquire(ctx)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if !ok {
		t.Fatal("expected first acquire to succeed")
	}

	_, ok, err = lock.Acquire(ctx)
	if err != nil {
		t.Fatalf("second acquire: %v", err)
	}
	if ok {
		t.Fatal("expected second acquire to fail while lock is held")
	}

	if err := release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}

	_, ok, err = lock.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	if !ok {
		t.Fatal("expected acquire to succeed after release")
	}
}

func TestReleaseDoesNotStealNewerLock(t *testing.T) {
	lock, mr := newTestLock(t)
	ctx := context.Background()

	staleRelease, ok, err := lock.Acquire(ctx)
	if err != nil || !ok {
		t.Fatalf("acquire: ok=%v err=%v", ok, err)
	}

	// Simulate the holder's TTL expiring and another run taking the lock.
	mr.FastForward(2 * time.Minute)

	_, ok, err = lock.Acquire(ctx)
	if err != nil || !ok {
		t.Fatalf("acquire after expiry: ok=%v err=%v", ok, err)
	}

	if err := staleRelease(ctx); err != nil {
		t.Fatalf("stale release: %v", err)
	}

	// The newer holder's lock must still be present.
	_, ok, err = lock.Acquire(ctx)
	if err != nil {
		t.Fatalf("third acquire: %v", err)
	}
	if ok {
		t.Fatal("stale release must not free a lock held by a newer run")
	}
}
