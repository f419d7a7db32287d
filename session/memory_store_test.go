package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func memorySession(id string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		UserName:  "alice",
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	sess := memorySession("sid-1", time.Hour)

	if err := store.Put(ctx, sess); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != sess.ID || got.UserName != sess.UserName || got.ExpiresAt != sess.ExpiresAt {
		t.Fatalf("got %+v, want %+v", got, sess)
	}
	if got == sess {
		t.Fatal("store must hand out copies, not the stored pointer")
	}
}

func TestMemoryStoreDuplicateID(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, memorySession("sid-1", time.Hour)); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if err := store.Put(ctx, memorySession("sid-1", time.Hour)); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("second put: got %v, want ErrDuplicateID", err)
	}
}

func TestMemoryStoreExpiredSessionAbsent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, memorySession("sid-1", time.Minute)); err != nil {
		t.Fatalf("put: %v", err)
	}

	store.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	if _, err := store.Get(ctx, "sid-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after expiry: got %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreGetSweepsOtherSessions(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, memorySession("short", time.Minute)); err != nil {
		t.Fatalf("put short: %v", err)
	}
	if err := store.Put(ctx, memorySession("long", time.Hour)); err != nil {
		t.Fatalf("put long: %v", err)
	}

	store.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	if _, err := store.Get(ctx, "long"); err != nil {
		t.Fatalf("get long: %v", err)
	}

	// The lookup of "long" must have reclaimed "short" as a side effect.
	store.mu.Lock()
	_, stillThere := store.sessions["short"]
	store.mu.Unlock()
	if stillThere {
		t.Fatal("expired session not swept by unrelated Get")
	}
}

func TestMemoryStoreRemoveIdempotent(t *testing.T) {
	store := NewMemoryStore()
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
	if _, err := store.Get(ctx, "sid-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after remove: got %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreUpdateMissingIsNoOp(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Update(ctx, memorySession("ghost", time.Hour)); err != nil {
		t.Fatalf("update missing: %v", err)
	}
	if _, err := store.Get(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatal("update of a missing session must not resurrect it")
	}
}

func TestMemoryStoreUpdateOverwritesWholeRecord(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	sess := memorySession("sid-1", time.Minute)

	if err := store.Put(ctx, sess); err != nil {
		t.Fatalf("put: %v", err)
	}

	renewed := sess.Clone()
	renewed.ExpiresAt = time.Now().Add(time.Hour).Unix()
	renewed.Role = "ADMIN"
	if err := store.Update(ctx, renewed); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := store.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ExpiresAt != renewed.ExpiresAt || got.Role != "ADMIN" {
		t.Fatalf("update not applied as a whole: %+v", got)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				id := fmt.Sprintf("w%d-s%d", worker, j)
				sess := memorySession(id, time.Hour)
				if err := store.Put(ctx, sess); err != nil {
					t.Errorf("put %s: %v", id, err)
					return
				}
				if _, err := store.Get(ctx, id); err != nil {
					t.Errorf("get %s: %v", id, err)
					return
				}
				sess.ExpiresAt = time.Now().Add(2 * time.Hour).Unix()
				if err := store.Update(ctx, sess); err != nil {
					t.Errorf("update %s: %v", id, err)
					return
				}
				if err := store.Remove(ctx, id); err != nil {
					t.Errorf("remove %s: %v", id, err)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
