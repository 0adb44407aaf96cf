package shard

import "github.com/cespare/xxhash/v2"

/*
Selector decides which shard owns a key. The cache does not care how the
decision is made as long as the same key always lands on the same shard.
*/
type Selector interface {
	Select(string, []*Shard) *Shard
}

// HashSelector spreads keys with xxhash, which is fast and distributes
// short string keys evenly.
type HashSelector struct{}

func (HashSelector) Select(key string, shards []*Shard) *Shard {
	return shards[xxhash.Sum64String(key)%uint64(len(shards))]
}
