package types

import "time"

// CacheEntry is one stored value and its expiration bookkeeping.
// Entries are only mutated while the owning shard is locked.
type CacheEntry struct {
	Key            string
	Value          any
	CreatedAt      time.Time
	LastAccessedAt time.Time

	// AbsoluteExpireAt is a fixed deadline. zero => no absolute expiry
	AbsoluteExpireAt time.Time

	// IdleExpireAfter is measured from LastAccessedAt. zero => no idle expiry
	IdleExpireAfter time.Duration
}

// Deadline returns the earliest moment the entry stops being valid and
// false when the entry never expires.
func (e *CacheEntry) Deadline() (time.Time, bool) {
	var (
		at  time.Time
		has bool
	)
	if !e.AbsoluteExpireAt.IsZero() {
		at, has = e.AbsoluteExpireAt, true
	}
	if e.IdleExpireAfter > 0 {
		idle := e.LastAccessedAt.Add(e.IdleExpireAfter)
		if !has || idle.Before(at) {
			at, has = idle, true
		}
	}
	return at, has
}
