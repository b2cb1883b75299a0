package domain

import (
	"strings"
	"time"
)

type SessionID string

type Session struct {
	ID SessionID
	// LastActivity is stamped when the session is created and is not refreshed by later turns.
	LastActivity time.Time
}

// IsExpired reports whether the session has been idle for at least maxIdle at now.
func (s Session) IsExpired(now time.Time, maxIdle time.Duration) bool {
	if maxIdle <= 0 {
		return false
	}

	return !s.LastActivity.After(now.Add(-maxIdle))
}

func (id SessionID) Valid() bool {
	return strings.TrimSpace(string(id)) != ""
}
