// Package expiration decides when a cache entry stops being valid.

package expiration

import (
	"time"

	"github.com/krisalay/ttl-cache/types"
)

/*
Strategy is the interface that all expiration rules must follow. The engine
never hard-codes expiry checks; it asks the configured strategy, so rules
can be combined or swapped.
*/
type Strategy interface {

	// IsExpired reports whether the entry is no longer valid at now.
	IsExpired(*types.CacheEntry, time.Time) bool

	// OnAccess is called whenever a cache entry is read successfully.
	OnAccess(*types.CacheEntry, time.Time)

	// OnWrite is called whenever a cache entry is written or replaced.
	OnWrite(*types.CacheEntry, time.Time)
}

// Default expires an entry on its absolute deadline or after its idle
// window, whichever comes first.
func Default() Strategy {
	return FirstOf(Absolute{}, Idle{})
}
