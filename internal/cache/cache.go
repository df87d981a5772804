// Package cache holds the in-memory response cache types.
package cache

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Entry represents a cached provider response.
type Entry struct {
	Response  string
	Provider  string
	Timestamp time.Time
}

// Expired reports whether the entry is older than ttl at the given instant.
// A non-positive ttl means entries never expire.
func (e Entry) Expired(ttl time.Duration, now time.Time) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(e.Timestamp) > ttl
}

// Key generates a cache key from the assistant mode and the user message.
func Key(mode, message string) string {
	h := sha256.New()
	h.Write([]byte(mode))
	h.Write([]byte{0})
	h.Write([]byte(message))
	return fmt.Sprintf("%x", h.Sum(nil))
}
