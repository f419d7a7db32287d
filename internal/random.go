package internal

import (
	"crypto/rand"
	"encoding/base64"
)

// SessionID is a 128-bit random session token.
type SessionID [16]byte

// NewSessionID draws a fresh token from crypto/rand.
func NewSessionID() (SessionID, error) {
	var sid SessionID
	_, err := rand.Read(sid[:])
	return sid, err
}

func (s SessionID) String() string {
	// base64url, no padding, compact
	return base64.RawURLEncoding.EncodeToString(s[:])
}
