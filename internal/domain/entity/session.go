package entity

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"
)

// SessionID names the host session a persisted layout belongs to.
type SessionID string

// ErrInvalidSession is returned for empty or malformed session ids.
var ErrInvalidSession = errors.New("invalid session")

// NewSessionID creates a session identifier.
// Format: YYYYMMDD_HHMMSS_xxxx (timestamp + 4 random hex chars)
func NewSessionID(now time.Time) SessionID {
	random := make([]byte, 2)
	_, _ = rand.Read(random)
	return SessionID(now.Format("20060102_150405") + "_" + hex.EncodeToString(random))
}

// Validate accepts ids made of letters, digits, '-', '_' and '.'.
func (id SessionID) Validate() error {
	s := string(id)
	if s == "" || len(s) > 128 {
		return ErrInvalidSession
	}
	if strings.IndexFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' ||
			r == '-' || r == '_' || r == '.')
	}) >= 0 {
		return ErrInvalidSession
	}
	return nil
}

// LayoutRecord is a stored layout document.
type LayoutRecord struct {
	SessionID SessionID
	Document  []byte
	UpdatedAt time.Time
}

// LayoutInfo summarizes a stored layout for listings.
type LayoutInfo struct {
	SessionID SessionID
	Size      int64
	UpdatedAt time.Time
}
