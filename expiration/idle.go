package expiration

import (
	"time"

	"github.com/krisalay/ttl-cache/types"
)

/*
Idle implements "expire after access", also known as sliding expiration.
Every read pushes the window forward. As long as the entry keeps getting
read it stays alive; once nobody touches it for longer than
CacheEntry.IdleExpireAfter it expires.
*/
type Idle struct{}

func (Idle) IsExpired(ent *types.CacheEntry, now time.Time) bool {
	return ent.IdleExpireAfter > 0 && now.Sub(ent.LastAccessedAt) > ent.IdleExpireAfter
}

// OnAccess restarts the idle window.
func (Idle) OnAccess(ent *types.CacheEntry, now time.Time) {
	ent.LastAccessedAt = now
}

// OnWrite starts the idle window at the moment of the write.
func (Idle) OnWrite(ent *types.CacheEntry, now time.Time) {
	ent.LastAccessedAt = now
}
