// Package store provides the transcript audit log.
//
// The log is write-only: entries are appended for later inspection and are
// never read back to restore state, so a restart always starts clean.
package store

import (
	"context"
	"time"
)

// TranscriptEntry is one routed command or reply.
type TranscriptEntry struct {
	UserID      string
	Role        string // "user" or "assistant"
	Content     string
	CommandType string
	APIUsed     string
	Timestamp   time.Time
}

// TranscriptLog persists transcript entries.
type TranscriptLog interface {
	// Append records one entry.
	Append(ctx context.Context, entry TranscriptEntry) error

	// Close closes the underlying storage.
	Close() error
}

// Nop is a TranscriptLog that discards everything. Used when the database
// cannot be opened so the relay keeps serving.
type Nop struct{}

func (Nop) Append(context.Context, TranscriptEntry) error { return nil }
func (Nop) Close() error                                  { return nil }
