package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteLog implements TranscriptLog on SQLite.
type SQLiteLog struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the transcript database at dbPath.
func NewSQLite(dbPath string) (*SQLiteLog, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS transcript (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		command_type TEXT,
		api_used TEXT,
		timestamp DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_transcript_user ON transcript(user_id, timestamp);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteLog{db: db}, nil
}

// Append records one transcript entry.
func (s *SQLiteLog) Append(ctx context.Context, entry TranscriptEntry) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO transcript (user_id, role, content, command_type, api_used, timestamp) VALUES (?, ?, ?, ?, ?, ?)",
		entry.UserID, entry.Role, entry.Content, entry.CommandType, entry.APIUsed, entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append transcript entry: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteLog) Close() error {
	return s.db.Close()
}
