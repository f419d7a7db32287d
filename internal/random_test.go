package internal

import "testing"

func TestNewSessionID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		sid, err := NewSessionID()
		if err != nil {
			t.Fatalf("new session id: %v", err)
		}
		s := sid.String()
		if len(s) != 22 {
			t.Fatalf("id %q has length %d, want 22", s, len(s))
		}
		if seen[s] {
			t.Fatalf("duplicate id %q", s)
		}
		seen[s] = true
	}
}
