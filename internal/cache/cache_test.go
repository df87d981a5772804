package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyDependsOnModeAndMessage(t *testing.T) {
	assert.Equal(t, Key("general", "hello"), Key("general", "hello"))
	assert.NotEqual(t, Key("general", "hello"), Key("study", "hello"))
	assert.NotEqual(t, Key("general", "hello"), Key("general", "hello!"))
	// The separator keeps mode/message boundaries from colliding.
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
}

func TestEntryExpiry(t *testing.T) {
	now := time.Now()
	entry := Entry{Response: "hi", Timestamp: now}

	assert.False(t, entry.Expired(time.Minute, now.Add(30*time.Second)))
	assert.True(t, entry.Expired(time.Minute, now.Add(2*time.Minute)))
	// Non-positive TTL disables expiry.
	assert.False(t, entry.Expired(0, now.Add(time.Hour)))
}
