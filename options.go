package cache

import (
	"time"

	"github.com/krisalay/ttl-cache/types"
)

// EntryOption overrides the cache-wide expiration defaults for one write.
type EntryOption func(*types.ExpirationPolicy)

/*
WithAbsoluteExpiration sets a fixed deadline d after the write.
d <= 0 stores an entry that is already expired.
*/
func WithAbsoluteExpiration(d time.Duration) EntryOption {
	return func(p *types.ExpirationPolicy) {
		p.Absolute = d
		p.HasAbsolute = true
	}
}

// WithoutAbsoluteExpiration keeps the entry until it is removed or,
// when an idle window is set, until it goes unread for that long.
func WithoutAbsoluteExpiration() EntryOption {
	return func(p *types.ExpirationPolicy) {
		p.Absolute = 0
		p.HasAbsolute = false
	}
}

// WithIdleExpiration expires the entry once it has not been read for
// longer than d. d <= 0 disables idle expiry.
func WithIdleExpiration(d time.Duration) EntryOption {
	return func(p *types.ExpirationPolicy) {
		p.Idle = d
	}
}

func (c *ShardedCache) policy(opts []EntryOption) types.ExpirationPolicy {
	p := c.engine.Defaults
	for _, opt := range opts {
		opt(&p)
	}
	return p
}
