package session

import "time"

// Session binds an opaque token to an authenticated principal and its expiry.
// ID and UserName are immutable after creation; Role is a per-request cache
// filled in by the role provider, not authoritative storage. Timestamps are
// unix seconds.
type Session struct {
	ID       string
	UserName string

	Role string

	CreatedAt int64
	ExpiresAt int64
}

// Expired reports whether the session is invalid at the given instant. A
// session is valid up to and including its expiry second.
func (s *Session) Expired(now time.Time) bool {
	return now.Unix() > s.ExpiresAt
}

// Clone returns an independent copy. Stores hand out and retain copies so a
// caller mutating its session (role refresh, renewal) never races another
// reader; records are replaced as a whole via Update.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
