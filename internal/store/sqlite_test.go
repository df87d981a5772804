package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteAppend(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "transcript.db")

	log, err := NewSQLite(dbPath)
	require.NoError(t, err)
	defer log.Close()

	ctx := context.Background()
	now := time.Now()

	err = log.Append(ctx, TranscriptEntry{
		UserID:      "alice",
		Role:        "user",
		Content:     "start session",
		CommandType: "timer",
		Timestamp:   now,
	})
	require.NoError(t, err)

	err = log.Append(ctx, TranscriptEntry{
		UserID:      "alice",
		Role:        "assistant",
		Content:     "Focus session started!",
		CommandType: "timer",
		APIUsed:     "builtin",
		Timestamp:   now,
	})
	require.NoError(t, err)

	var count int
	err = log.db.QueryRow("SELECT COUNT(*) FROM transcript WHERE user_id = ?", "alice").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNopLog(t *testing.T) {
	var log TranscriptLog = Nop{}
	assert.NoError(t, log.Append(context.Background(), TranscriptEntry{}))
	assert.NoError(t, log.Close())
}
