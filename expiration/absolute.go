package expiration

import (
	"time"

	"github.com/krisalay/ttl-cache/types"
)

// Absolute enforces CacheEntry.AbsoluteExpireAt. Reads never move the deadline.
type Absolute struct{}

// IsExpired is true from the deadline onwards, so a zero-length
// expiration is already expired at the instant it was written.
func (Absolute) IsExpired(ent *types.CacheEntry, now time.Time) bool {
	return !ent.AbsoluteExpireAt.IsZero() && !now.Before(ent.AbsoluteExpireAt)
}

func (Absolute) OnAccess(*types.CacheEntry, time.Time) {}

func (Absolute) OnWrite(*types.CacheEntry, time.Time) {}
