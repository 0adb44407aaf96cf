package engine

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/krisalay/ttl-cache/events"
	"github.com/krisalay/ttl-cache/expiration"
	"github.com/krisalay/ttl-cache/logger"
	"github.com/krisalay/ttl-cache/types"
)

/*
CacheEngine is the policy layer of the cache. It decides:
- What an entry's deadlines are when it is written
- When an entry is expired
- What happens to an entry when it is read
- Who is told when an entry leaves
- How events are counted

It does NOT store data, pick shards, lock, or choose eviction victims.
*/
type CacheEngine struct {

	// Clock is the only source of time. Tests swap in clock.NewMock().
	Clock clock.Clock

	// Expiration decides validity. Defaults to expiration.Default().
	Expiration expiration.Strategy

	// Defaults apply to writes that do not override them.
	Defaults types.ExpirationPolicy

	// Listener hears about every removal. Optional.
	Listener events.Listener

	Metrics types.Metrics

	Logger logger.Logger
}

type Option func(*CacheEngine)

func WithClock(c clock.Clock) Option {
	return func(e *CacheEngine) { e.Clock = c }
}

func WithExpiration(s expiration.Strategy) Option {
	return func(e *CacheEngine) { e.Expiration = s }
}

func WithDefaults(p types.ExpirationPolicy) Option {
	return func(e *CacheEngine) { e.Defaults = p }
}

func WithListener(l events.Listener) Option {
	return func(e *CacheEngine) { e.Listener = l }
}

func WithMetrics(m types.Metrics) Option {
	return func(e *CacheEngine) { e.Metrics = m }
}

func WithLogger(l logger.Logger) Option {
	return func(e *CacheEngine) { e.Logger = l }
}

/*
NewCacheEngine creates a CacheEngine. Every collaborator that is not
supplied gets a working default, so the rest of the code never checks
for nil.
*/
func NewCacheEngine(opts ...Option) *CacheEngine {
	e := &CacheEngine{
		Clock:      clock.New(),
		Expiration: expiration.Default(),
		Defaults:   types.DefaultExpirationPolicy(),
		Metrics:    types.NoopMetrics{},
		Logger:     logger.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.Metrics == nil {
		e.Metrics = types.NoopMetrics{}
	}
	if e.Logger == nil {
		e.Logger = logger.NewNop()
	}
	return e
}

func (e *CacheEngine) Now() time.Time {
	return e.Clock.Now()
}

// NewEntry builds an entry written now under policy p.
func (e *CacheEngine) NewEntry(key string, value any, p types.ExpirationPolicy) *types.CacheEntry {
	now := e.Clock.Now()
	ent := &types.CacheEntry{
		Key:             key,
		Value:           value,
		CreatedAt:       now,
		LastAccessedAt:  now,
		IdleExpireAfter: max(p.Idle, 0),
	}
	if p.HasAbsolute {
		ent.AbsoluteExpireAt = now.Add(p.Absolute)
	}
	e.Expiration.OnWrite(ent, now)
	return ent
}

func (e *CacheEngine) IsExpired(ent *types.CacheEntry) bool {
	return e.Expiration.IsExpired(ent, e.Clock.Now())
}

// OnRead is called every time a live entry is returned to a caller.
// It restarts the idle window.
func (e *CacheEngine) OnRead(ent *types.CacheEntry) {
	e.Expiration.OnAccess(ent, e.Clock.Now())
}

// OnRemove counts and announces an entry that left the cache.
// It must be called without any shard lock held.
func (e *CacheEngine) OnRemove(ent *types.CacheEntry, reason events.Reason) {
	switch reason {
	case events.Expired:
		e.Metrics.Expire()
	case events.Evicted:
		e.Metrics.Eviction()
	}
	if e.Listener != nil {
		e.Listener.OnRemove(ent.Key, ent.Value, reason)
	}
}
