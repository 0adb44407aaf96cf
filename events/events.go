/*
Package events tells interested parties when an entry leaves the cache.

Listeners run on the goroutine that removed the entry, after the shard
lock has been released, so a listener may call back into the cache.
They should still be quick: a slow listener slows the operation that
triggered it.
*/
package events

import "github.com/krisalay/ttl-cache/logger"

// Reason says why an entry left the cache.
type Reason int

const (
	// Removed is an explicit Remove call.
	Removed Reason = iota

	// Replaced is an entry overwritten by Set or Update.
	Replaced

	// Expired is an entry dropped after its absolute or idle deadline.
	Expired

	// Evicted is an entry dropped because its shard was full.
	Evicted

	// Cleared is an entry dropped by Clear.
	Cleared
)

func (r Reason) String() string {
	switch r {
	case Removed:
		return "removed"
	case Replaced:
		return "replaced"
	case Expired:
		return "expired"
	case Evicted:
		return "evicted"
	case Cleared:
		return "cleared"
	}
	return "unknown"
}

type Listener interface {
	OnRemove(key string, value any, reason Reason)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(key string, value any, reason Reason)

func (f ListenerFunc) OnRemove(key string, value any, reason Reason) {
	f(key, value, reason)
}

// Listeners notifies every member in order.
type Listeners []Listener

func (ls Listeners) OnRemove(key string, value any, reason Reason) {
	for _, l := range ls {
		l.OnRemove(key, value, reason)
	}
}

// LogListener writes one debug line per removal.
type LogListener struct {
	Log logger.Logger
}

func (l LogListener) OnRemove(key string, _ any, reason Reason) {
	l.Log.WithFields(logger.Fields{
		"key":    key,
		"reason": reason.String(),
	}).Debug("cache entry removed")
}
