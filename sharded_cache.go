package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"golang.org/x/sync/singleflight"

	"github.com/krisalay/ttl-cache/config"
	"github.com/krisalay/ttl-cache/engine"
	"github.com/krisalay/ttl-cache/events"
	"github.com/krisalay/ttl-cache/eviction"
	"github.com/krisalay/ttl-cache/logger"
	"github.com/krisalay/ttl-cache/shard"
	"github.com/krisalay/ttl-cache/types"
)

const (
	// NoExpiry is what TTL reports for a live entry without any deadline.
	NoExpiry time.Duration = -1

	// Missing is what TTL reports for an absent or expired key.
	Missing time.Duration = -2
)

type Config struct {
	// Shards is the number of independently locked partitions.
	Shards int

	// Capacity bounds the total number of entries, split evenly across
	// shards. 0 means unbounded.
	Capacity int

	// Eviction picks victims once a shard is full. Ignored when unbounded.
	Eviction eviction.PolicyType

	// SweepInterval is how often expired entries are reclaimed in the
	// background. 0 disables the sweeper; reads still expire lazily.
	SweepInterval time.Duration

	// BatchConcurrency caps the goroutines used by the *Many writes.
	BatchConcurrency int
}

func DefaultConfig() Config {
	return Config{
		Shards:           16,
		Eviction:         eviction.LRU,
		SweepInterval:    30 * time.Second,
		BatchConcurrency: 8,
	}
}

/*
ShardedCache is the cache service. It connects:
- shards, which store entries under one lock each
- the engine, which owns expiry rules, time, metrics and listeners
- singleflight, which collapses concurrent GetOrSet loads of one key
- the sweeper, which reclaims expired entries nobody reads

It must be created with NewShardedCache (or New) and released with Close.
*/
type ShardedCache struct {
	shards   []*shard.Shard
	engine   *engine.CacheEngine
	selector shard.Selector
	cfg      Config

	flights singleflight.Group

	closed    atomic.Bool
	closeOnce sync.Once
	stop      chan struct{}
	wg        sync.WaitGroup
}

// removal is an entry that left a shard and still has to be announced
// once the shard lock is released.
type removal struct {
	ent    *types.CacheEntry
	reason events.Reason
}

func NewShardedCache(cfg Config, eng *engine.CacheEngine) (*ShardedCache, error) {
	if cfg.Shards < 1 {
		cfg.Shards = 1
	}
	if cfg.BatchConcurrency < 1 {
		cfg.BatchConcurrency = 1
	}
	if cfg.Eviction == "" {
		cfg.Eviction = eviction.LRU
	}
	if eng == nil {
		eng = engine.NewCacheEngine()
	}

	// Round up so a capacity smaller than the shard count still bounds every shard.
	perShard := 0
	if cfg.Capacity > 0 {
		perShard = (cfg.Capacity + cfg.Shards - 1) / cfg.Shards
	}

	s := make([]*shard.Shard, cfg.Shards)
	for i := range s {
		sh, err := shard.NewShard(perShard, cfg.Eviction)
		if err != nil {
			return nil, err
		}
		s[i] = sh
	}

	c := &ShardedCache{
		shards:   s,
		engine:   eng,
		selector: shard.HashSelector{},
		cfg:      cfg,
		stop:     make(chan struct{}),
	}

	if cfg.SweepInterval > 0 {
		// The ticker is created here, not in the goroutine, so a mock clock
		// advanced right after construction already drives it.
		ticker := eng.Clock.Ticker(cfg.SweepInterval)
		c.wg.Add(1)
		go c.sweepLoop(ticker)
	}

	eng.Logger.WithFields(logger.Fields{
		"shards":         cfg.Shards,
		"capacity":       cfg.Capacity,
		"eviction":       cfg.Eviction,
		"sweep_interval": cfg.SweepInterval.String(),
	}).Debug("cache started")

	return c, nil
}

// New builds a cache from loaded configuration. Engine options add the
// clock, metrics, listener or logger.
func New(cfg *config.Config, opts ...engine.Option) (*ShardedCache, error) {
	defaults := types.ExpirationPolicy{
		Absolute:    cfg.Cache.AbsoluteExpiration,
		HasAbsolute: cfg.Cache.AbsoluteExpiration > 0,
		Idle:        cfg.Cache.IdleExpiration,
	}
	eng := engine.NewCacheEngine(append([]engine.Option{engine.WithDefaults(defaults)}, opts...)...)

	return NewShardedCache(Config{
		Shards:           cfg.Cache.Shards,
		Capacity:         cfg.Cache.Capacity,
		Eviction:         cfg.Cache.Eviction,
		SweepInterval:    cfg.Cache.SweepInterval,
		BatchConcurrency: cfg.Cache.BatchConcurrency,
	}, eng)
}

func (c *ShardedCache) shardFor(key string) *shard.Shard {
	return c.selector.Select(key, c.shards)
}

/*
Set inserts or overwrites the entry for key.
Without options the engine defaults apply: 60 seconds absolute, no idle
window, unless configured otherwise.
*/
func (c *ShardedCache) Set(key string, value any, opts ...EntryOption) error {
	if c.closed.Load() {
		return ErrStoreUnavailable
	}
	ent := c.engine.NewEntry(key, value, c.policy(opts))
	sh := c.shardFor(key)

	sh.Mu.Lock()
	gone := c.makeRoomLocked(sh, key, nil)
	if old, ok := sh.Insert(ent); ok {
		gone = append(gone, c.replaced(old))
	}
	sh.Mu.Unlock()

	c.notify(gone)
	return nil
}

/*
Update replaces key wholesale: the old entry and its deadlines are
dropped and a new one is written with opts. Eviction bookkeeping starts
over as for a brand new key. A missing key is simply set.
*/
func (c *ShardedCache) Update(key string, value any, opts ...EntryOption) error {
	if c.closed.Load() {
		return ErrStoreUnavailable
	}
	ent := c.engine.NewEntry(key, value, c.policy(opts))
	sh := c.shardFor(key)

	var gone []removal
	sh.Mu.Lock()
	if old, ok := sh.Take(key); ok {
		gone = append(gone, c.replaced(old))
	}
	gone = c.makeRoomLocked(sh, key, gone)
	sh.Insert(ent)
	sh.Mu.Unlock()

	c.notify(gone)
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (c *ShardedCache) Remove(key string) error {
	if c.closed.Load() {
		return ErrStoreUnavailable
	}
	sh := c.shardFor(key)

	sh.Mu.Lock()
	ent, ok := sh.Take(key)
	sh.Mu.Unlock()

	if ok {
		c.engine.OnRemove(ent, events.Removed)
	}
	return nil
}

/*
Expire moves the absolute deadline of a live key to now + d and reports
whether the key was live. The idle window is left as it was.
*/
func (c *ShardedCache) Expire(key string, d time.Duration) (bool, error) {
	if c.closed.Load() {
		return false, ErrStoreUnavailable
	}
	sh := c.shardFor(key)

	sh.Mu.Lock()
	defer sh.Mu.Unlock()

	ent, ok := sh.Lookup(key)
	if !ok || c.engine.IsExpired(ent) {
		return false, nil
	}
	ent.AbsoluteExpireAt = c.engine.Now().Add(d)
	return true, nil
}

/*
TTL returns how long key has left before its earliest deadline.

RETURN VALUES (Redis-compatible semantics):
  - > 0 (or 0 right at the deadline): remaining time
  - NoExpiry (-1): the key exists but never expires
  - Missing (-2): the key does not exist or is expired

TTL does not count as a read: it neither refreshes the idle window nor
touches eviction order.
*/
func (c *ShardedCache) TTL(key string) time.Duration {
	sh := c.shardFor(key)

	sh.Mu.Lock()
	defer sh.Mu.Unlock()

	ent, ok := sh.Lookup(key)
	if !ok || c.engine.IsExpired(ent) {
		return Missing
	}
	at, has := ent.Deadline()
	if !has {
		return NoExpiry
	}
	return at.Sub(c.engine.Now())
}

// Len counts stored entries, including expired ones the sweeper has not
// reclaimed yet.
func (c *ShardedCache) Len() int {
	n := 0
	for _, sh := range c.shards {
		sh.Mu.Lock()
		n += sh.Len()
		sh.Mu.Unlock()
	}
	return n
}

// Clear drops every entry.
func (c *ShardedCache) Clear() error {
	if c.closed.Load() {
		return ErrStoreUnavailable
	}
	for _, sh := range c.shards {
		sh.Mu.Lock()
		drained := sh.Drain()
		sh.Mu.Unlock()

		for _, ent := range drained {
			c.engine.OnRemove(ent, events.Cleared)
		}
	}
	return nil
}

// Sweep removes every expired entry now and returns how many it removed.
func (c *ShardedCache) Sweep() int {
	removed := 0
	for _, sh := range c.shards {
		sh.Mu.Lock()
		expired := sh.DeleteIf(c.engine.IsExpired)
		sh.Mu.Unlock()

		for _, ent := range expired {
			c.engine.OnRemove(ent, events.Expired)
		}
		removed += len(expired)
	}
	return removed
}

func (c *ShardedCache) sweepLoop(ticker *clock.Ticker) {
	defer c.wg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if n := c.Sweep(); n > 0 {
				c.engine.Logger.WithField("removed", n).Debug("expired entries swept")
			}
		}
	}
}

/*
Close stops the sweeper and marks the cache unavailable: every later
operation returns ErrStoreUnavailable. Stored entries are kept so Len
still reports them. Close is safe to call more than once.
*/
func (c *ShardedCache) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		close(c.stop)
		c.wg.Wait()
		c.engine.Logger.Debug("cache closed")
	})
	return nil
}

// read returns the live value for key. An expired entry is deleted on the
// spot. count controls whether the hit or miss is recorded.
func (c *ShardedCache) read(key string, count bool) (any, bool, error) {
	if c.closed.Load() {
		return nil, false, ErrStoreUnavailable
	}
	sh := c.shardFor(key)

	sh.Mu.Lock()
	ent, ok := sh.Lookup(key)
	if !ok {
		sh.Mu.Unlock()
		if count {
			c.engine.Metrics.Miss()
		}
		return nil, false, nil
	}
	if c.engine.IsExpired(ent) {
		sh.Take(key)
		sh.Mu.Unlock()
		c.engine.OnRemove(ent, events.Expired)
		if count {
			c.engine.Metrics.Miss()
		}
		return nil, false, nil
	}
	c.engine.OnRead(ent)
	sh.Touch(key)
	value := ent.Value
	sh.Mu.Unlock()

	if count {
		c.engine.Metrics.Hit()
	}
	return value, true, nil
}

// makeRoomLocked frees one slot for key when its shard is full, preferring
// entries that are already expired over live victims.
func (c *ShardedCache) makeRoomLocked(sh *shard.Shard, key string, gone []removal) []removal {
	if !sh.Full(key) {
		return gone
	}
	for _, ent := range sh.DeleteIf(c.engine.IsExpired) {
		gone = append(gone, removal{ent: ent, reason: events.Expired})
	}
	if sh.Full(key) {
		if ent, ok := sh.Evict(); ok {
			gone = append(gone, removal{ent: ent, reason: events.Evicted})
		}
	}
	return gone
}

func (c *ShardedCache) replaced(old *types.CacheEntry) removal {
	if c.engine.IsExpired(old) {
		return removal{ent: old, reason: events.Expired}
	}
	return removal{ent: old, reason: events.Replaced}
}

func (c *ShardedCache) notify(gone []removal) {
	for _, r := range gone {
		c.engine.OnRemove(r.ent, r.reason)
	}
}
