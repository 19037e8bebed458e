package sessions

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestStore() (*Store, *time.Time) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore().WithClock(func() time.Time { return now })
	return store, &now
}

func TestGetOrCreateFreshSession(t *testing.T) {
	store, _ := newTestStore()

	history := store.GetOrCreate("user_123")
	assert.Empty(t, history)
	assert.Equal(t, 1, store.Len())
}

func TestAppendAndHistory(t *testing.T) {
	store, _ := newTestStore()

	store.GetOrCreate("user_123")
	store.Append("user_123", "User: where is my food")
	store.Append("user_123", "Assistant: on its way")

	assert.Equal(t, []string{
		"User: where is my food",
		"Assistant: on its way",
	}, store.History("user_123"))
}

func TestIdleTimeoutResetsHistory(t *testing.T) {
	store, now := newTestStore()

	store.GetOrCreate("user_123")
	store.Append("user_123", "User: hello")

	// Just inside the timeout: history survives and last-active refreshes.
	*now = now.Add(IdleTimeout)
	assert.Len(t, store.GetOrCreate("user_123"), 1)

	// Past the timeout since the refresh: clean slate.
	*now = now.Add(IdleTimeout + time.Second)
	assert.Empty(t, store.GetOrCreate("user_123"))
	assert.Empty(t, store.History("user_123"))
}

func TestAccessRefreshesLastActive(t *testing.T) {
	store, now := newTestStore()

	store.GetOrCreate("user_123")
	store.Append("user_123", "User: hi")

	// Keep touching the session at intervals shorter than the timeout;
	// it must never reset.
	for i := 0; i < 5; i++ {
		*now = now.Add(20 * time.Minute)
		assert.Len(t, store.GetOrCreate("user_123"), 1)
	}
}

func TestHistoryCappedOldestFirst(t *testing.T) {
	store, _ := newTestStore()

	store.GetOrCreate("user_123")
	for i := 0; i < 15; i++ {
		store.Append("user_123", fmt.Sprintf("User: message %d", i))
	}

	history := store.GetOrCreate("user_123")
	assert.Len(t, history, MaxHistory)
	assert.Equal(t, "User: message 5", history[0])
	assert.Equal(t, "User: message 14", history[len(history)-1])
}

func TestReset(t *testing.T) {
	store, _ := newTestStore()

	store.GetOrCreate("user_123")
	store.Append("user_123", "User: hi")
	store.Reset("user_123")

	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.History("user_123"))
}

func TestSessionsIsolatedPerUser(t *testing.T) {
	store, _ := newTestStore()

	store.GetOrCreate("alice")
	store.GetOrCreate("bob")
	store.Append("alice", "User: alice here")

	assert.Len(t, store.History("alice"), 1)
	assert.Empty(t, store.History("bob"))
}
