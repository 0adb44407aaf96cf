package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krisalay/ttl-cache/logger"
)

func TestListenersFanOut(t *testing.T) {
	var got []string
	record := func(prefix string) Listener {
		return ListenerFunc(func(key string, _ any, reason Reason) {
			got = append(got, prefix+":"+key+":"+reason.String())
		})
	}

	ls := Listeners{record("a"), record("b")}
	ls.OnRemove("k", 1, Evicted)

	assert.Equal(t, []string{"a:k:evicted", "b:k:evicted"}, got)
}

func TestLogListener(t *testing.T) {
	log := logger.NewTestLogger()
	LogListener{Log: log}.OnRemove("user:1", "v", Expired)

	entry, ok := log.FindEntry("debug", "cache entry removed")
	require.True(t, ok)
	assert.Equal(t, "user:1", entry.Fields["key"])
	assert.Equal(t, "expired", entry.Fields["reason"])
}

func TestReasonString(t *testing.T) {
	assert.Equal(t, "removed", Removed.String())
	assert.Equal(t, "replaced", Replaced.String())
	assert.Equal(t, "cleared", Cleared.String())
	assert.Equal(t, "unknown", Reason(42).String())
}
