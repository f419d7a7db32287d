package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStoreTest(t *testing.T) (*RedisStore, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(rdb, "wa")
	return store, mr, func() {
		rdb.Close()
		mr.Close()
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _, done := newRedisStoreTest(t)
	defer done()
	ctx := context.Background()

	sess := memorySession("sid-1", time.Hour)
	sess.Role = "USER"

	if err := store.Put(ctx, sess); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != "sid-1" || got.UserName != sess.UserName || got.Role != sess.Role ||
		got.CreatedAt != sess.CreatedAt || got.ExpiresAt != sess.ExpiresAt {
		t.Fatalf("got %+v, want %+v", got, sess)
	}
}

func TestRedisStoreDuplicateID(t *testing.T) {
	store, _, done := newRedisStoreTest(t)
	defer done()
	ctx := context.Background()

	if err := store.Put(ctx, memorySession("sid-1", time.Hour)); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if err := store.Put(ctx, memorySession("sid-1", time.Hour)); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("second put: got %v, want ErrDuplicateID", err)
	}
}

func TestRedisStoreExpiry(t *testing.T) {
	store, mr, done := newRedisStoreTest(t)
	defer done()
	ctx := context.Background()

	if err := store.Put(ctx, memorySession("sid-1", time.Second)); err != nil {
		t.Fatalf("put: %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, err := store.Get(ctx, "sid-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after expiry: got %v, want ErrNotFound", err)
	}
}

func TestRedisStoreRemoveIdempotent(t *testing.T) {
	store, _, done := newRedisStoreTest(t)
	defer done()
	ctx := context.Background()

	if err := store.Put(ctx, memorySession("sid-1", time.Hour)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Remove(ctx, "sid-1"); err != nil {
		t.Fatalf("first remove: %v", err)
	}
	if err := store.Remove(ctx, "sid-1"); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestRedisStoreUpdateMissingIsNoOp(t *testing.T) {
	store, _, done := newRedisStoreTest(t)
	defer done()
	ctx := context.Background()

	if err := store.Update(ctx, memorySession("ghost", time.Hour)); err != nil {
		t.Fatalf("update missing: %v", err)
	}
	if _, err := store.Get(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatal("update of a missing session must not resurrect it")
	}
}

func TestRedisStoreUnavailable(t *testing.T) {
	store, mr, done := newRedisStoreTest(t)
	defer done()
	ctx := context.Background()

	mr.Close()

	if err := store.Put(ctx, memorySession("sid-1", time.Hour)); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("put against closed redis: got %v, want ErrUnavailable", err)
	}
	if _, err := store.Get(ctx, "sid-1"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("get against closed redis: got %v, want ErrUnavailable", err)
	}
}
