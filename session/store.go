package session

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when no live session matches the id,
	// including sessions that just expired.
	ErrNotFound = errors.New("session not found")

	// ErrDuplicateID is returned by Put when a live session with the same id
	// already exists. Session ids are unique across the store at any instant.
	ErrDuplicateID = errors.New("duplicate session id")

	// ErrUnavailable wraps I/O failures of the backing medium. Stores never
	// swallow them.
	ErrUnavailable = errors.New("session store unavailable")
)

// Store is the session repository contract. Implementations must make all
// four operations linearizable with respect to each other: a Get racing a
// Remove on the same id observes the session either fully present or fully
// gone, never mid-removal.
type Store interface {
	// Put inserts a new session. Inserting an id that is already live fails
	// with ErrDuplicateID.
	Put(ctx context.Context, sess *Session) error

	// Get returns the live session matching id, or ErrNotFound. Expired
	// sessions are reclaimed lazily: Get sweeps them as part of the lookup,
	// so no explicit sweep call exists.
	Get(ctx context.Context, id string) (*Session, error)

	// Update overwrites the stored record matching sess.ID as a whole. When
	// the session no longer exists the update is silently lost; the session
	// already expired or was removed concurrently.
	Update(ctx context.Context, sess *Session) error

	// Remove deletes by id. Removing an absent session is a no-op.
	Remove(ctx context.Context, id string) error
}
