package expiration

import (
	"time"

	"github.com/krisalay/ttl-cache/types"
)

type firstOf []Strategy

// FirstOf combines strategies: the entry expires as soon as any of them
// says so. Access and write notifications reach every member.
func FirstOf(strategies ...Strategy) Strategy {
	return firstOf(strategies)
}

func (f firstOf) IsExpired(ent *types.CacheEntry, now time.Time) bool {
	for _, s := range f {
		if s.IsExpired(ent, now) {
			return true
		}
	}
	return false
}

func (f firstOf) OnAccess(ent *types.CacheEntry, now time.Time) {
	for _, s := range f {
		s.OnAccess(ent, now)
	}
}

func (f firstOf) OnWrite(ent *types.CacheEntry, now time.Time) {
	for _, s := range f {
		s.OnWrite(ent, now)
	}
}
