package shard

import "github.com/krisalay/ttl-cache/types"

/*
Store holds the key → entry data of one shard.
It is NOT safe for concurrent use on its own: every call is made while the
owning shard's mutex is held, which is what keeps each single-key
operation atomic.
*/
type Store interface {
	Get(string) (*types.CacheEntry, bool)

	// Put inserts or replaces an entry.
	Put(string, *types.CacheEntry)

	Delete(string)

	// Range calls fn for every entry until fn returns false.
	// fn may delete the entry it was given.
	Range(fn func(string, *types.CacheEntry) bool)

	Size() int64

	// Reset drops everything.
	Reset()
}

type mapStore struct {
	data map[string]*types.CacheEntry
}

func NewMapStore() Store {
	return &mapStore{data: make(map[string]*types.CacheEntry)}
}

func (s *mapStore) Get(key string) (*types.CacheEntry, bool) {
	ent, ok := s.data[key]
	return ent, ok
}

func (s *mapStore) Put(key string, ent *types.CacheEntry) {
	s.data[key] = ent
}

func (s *mapStore) Delete(key string) {
	delete(s.data, key)
}

func (s *mapStore) Range(fn func(string, *types.CacheEntry) bool) {
	for k, ent := range s.data {
		if !fn(k, ent) {
			return
		}
	}
}

func (s *mapStore) Size() int64 {
	return int64(len(s.data))
}

func (s *mapStore) Reset() {
	s.data = make(map[string]*types.CacheEntry)
}
