package domain

import (
	"fmt"
	"time"
)

// Session is the server-side record of one live connection and its display
// identity. The coordinator owns sessions and serializes all access, so no
// internal locking is needed.
type Session struct {
	ConnID      string
	AnonymousID int
	JoinedAt    time.Time
}

func NewSession(connID string, anonymousID int) *Session {
	return &Session{
		ConnID:      connID,
		AnonymousID: anonymousID,
		JoinedAt:    time.Now(),
	}
}

// Label is the display name shown to other participants. Two live sessions
// may share a label; connections are always disambiguated by ConnID.
func (s *Session) Label() string {
	return fmt.Sprintf("Anonymous #%d", s.AnonymousID)
}
