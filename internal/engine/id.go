package engine

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"
)

// generateID creates a short random hex ID for sessions.
func generateID(now time.Time) string {
	return idFrom(rand.Reader, now)
}

// idFrom falls back to the caller's clock when entropy is unavailable.
func idFrom(entropy io.Reader, now time.Time) string {
	b := make([]byte, 6)
	if _, err := io.ReadFull(entropy, b); err != nil {
		return fmt.Sprintf("round-%d", now.UnixNano())
	}
	return fmt.Sprintf("%x", b)
}
