/*
Package api holds the contract callers program against when they do not
want to depend on the concrete cache type.

Typed reads (Get, GetMany, GetOrSet) are generic free functions in the
root package, because Go methods cannot carry their own type
parameters. Everything else lives here.
*/
package api

import (
	"context"
	"time"

	cache "github.com/krisalay/ttl-cache"
)

/*
Service defines the PUBLIC API of the TTL cache.
Sharding, eviction, expiration and concurrency are hidden behind it.
*/
type Service interface {

	/*
		Set stores value under key, replacing any previous entry.

		BEHAVIOR:
		---------
		- Without options the cache-wide defaults apply (60s absolute)
		- Applies the eviction policy if the shard is full
		- Announces the replaced entry to listeners
	*/
	Set(key string, value any, opts ...cache.EntryOption) error

	// SetMany applies Set to every pair. Not atomic: failures are combined.
	SetMany(ctx context.Context, entries map[string]any, opts ...cache.EntryOption) error

	/*
		Update replaces key wholesale, expiration included.
		A missing key is simply set.
	*/
	Update(key string, value any, opts ...cache.EntryOption) error

	UpdateMany(ctx context.Context, entries map[string]any, opts ...cache.EntryOption) error

	/*
		Remove deletes key immediately.

		This operation is idempotent:
		- Removing a non-existing key is safe
	*/
	Remove(key string) error

	RemoveMany(ctx context.Context, keys []string) error

	/*
		Expire moves the absolute deadline of a live key to now + ttl.

		- Key is live: returns true
		- Key is missing or expired: does nothing, returns false
	*/
	Expire(key string, ttl time.Duration) (bool, error)

	/*
		TTL returns the remaining time-to-live for a key.

		RETURN VALUES (Redis-compatible semantics):
		-------------------------------------------
		> 0   : Duration remaining before expiration
		-1    : Key exists but has no deadline
		-2    : Key does not exist or is already expired
	*/
	TTL(key string) time.Duration

	Len() int

	Clear() error

	// Sweep reclaims expired entries now and reports how many it removed.
	Sweep() int

	/*
		Close stops background goroutines. Every later operation
		returns ErrStoreUnavailable. Safe to call more than once.
	*/
	Close() error
}

var _ Service = (*cache.ShardedCache)(nil)
