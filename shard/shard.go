package shard

import (
	"sync"

	"github.com/krisalay/ttl-cache/eviction"
	"github.com/krisalay/ttl-cache/types"
)

/*
Shard is a small, independent piece of the cache. Splitting the key space
across shards means writers to different keys rarely contend on the same
lock.

Every method below expects Mu to be held by the caller. The cache takes
the lock once per key operation so a read-check-write sequence on one key
can never interleave with another writer.
*/
type Shard struct {
	Mu sync.Mutex

	Store Store

	// Eviction is nil when the shard is unbounded.
	Eviction eviction.Policy

	// capacity is the most entries this shard holds. 0 => unbounded.
	capacity int
}

func NewShard(capacity int, policy eviction.PolicyType) (*Shard, error) {
	s := &Shard{Store: NewMapStore()}
	if capacity <= 0 {
		return s, nil
	}
	ev, err := eviction.New(policy)
	if err != nil {
		return nil, err
	}
	s.Eviction = ev
	s.capacity = capacity
	return s, nil
}

// Lookup returns the stored entry, live or not.
func (s *Shard) Lookup(key string) (*types.CacheEntry, bool) {
	return s.Store.Get(key)
}

// Touch records a successful read for eviction ordering.
func (s *Shard) Touch(key string) {
	if s.Eviction != nil {
		s.Eviction.OnGet(key)
	}
}

// Full reports whether inserting a key that is not yet stored would
// exceed capacity.
func (s *Shard) Full(key string) bool {
	if s.capacity <= 0 {
		return false
	}
	if _, ok := s.Store.Get(key); ok {
		return false
	}
	return s.Store.Size() >= int64(s.capacity)
}

// Insert stores ent and returns the entry it replaced, if any.
// Callers make room first: Insert never evicts.
func (s *Shard) Insert(ent *types.CacheEntry) (*types.CacheEntry, bool) {
	old, ok := s.Store.Get(ent.Key)
	s.Store.Put(ent.Key, ent)
	if s.Eviction != nil {
		s.Eviction.OnPut(ent.Key)
	}
	return old, ok
}

// Take deletes key and returns what was stored under it.
func (s *Shard) Take(key string) (*types.CacheEntry, bool) {
	ent, ok := s.Store.Get(key)
	if !ok {
		return nil, false
	}
	s.Store.Delete(key)
	if s.Eviction != nil {
		s.Eviction.Remove(key)
	}
	return ent, true
}

// Evict removes the policy's victim. It returns false for unbounded or
// empty shards.
func (s *Shard) Evict() (*types.CacheEntry, bool) {
	if s.Eviction == nil {
		return nil, false
	}
	key, ok := s.Eviction.Evict()
	if !ok {
		return nil, false
	}
	ent, ok := s.Store.Get(key)
	if !ok {
		return nil, false
	}
	s.Store.Delete(key)
	return ent, true
}

// DeleteIf removes every entry matching pred and returns them.
func (s *Shard) DeleteIf(pred func(*types.CacheEntry) bool) []*types.CacheEntry {
	var removed []*types.CacheEntry
	s.Store.Range(func(key string, ent *types.CacheEntry) bool {
		if pred(ent) {
			removed = append(removed, ent)
		}
		return true
	})
	for _, ent := range removed {
		s.Take(ent.Key)
	}
	return removed
}

// Drain empties the shard and returns everything it held.
func (s *Shard) Drain() []*types.CacheEntry {
	all := s.DeleteIf(func(*types.CacheEntry) bool { return true })
	s.Store.Reset()
	return all
}

func (s *Shard) Len() int {
	return int(s.Store.Size())
}
