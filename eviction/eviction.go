/*
Package eviction decides what a full shard gives up to make room.
Policies are not safe for concurrent use; the owning shard serializes
every call under its lock.
*/
package eviction

import (
	"strings"

	"github.com/pkg/errors"
)

// Policy is the contract every eviction strategy implements.
type Policy interface {

	// OnGet is called whenever a live key is read.
	// LRU reorders on it, LFU counts it, FIFO ignores it.
	OnGet(string)

	// OnPut is called whenever a key is written, new or not.
	OnPut(string)

	// Remove drops the bookkeeping for a key that left the cache for any
	// reason other than Evict.
	Remove(string)

	// Evict picks the victim, forgets it, and returns it.
	// ok is false when nothing is tracked.
	Evict() (key string, ok bool)

	// Len is the number of tracked keys.
	Len() int
}

// PolicyType names a supported eviction strategy.
type PolicyType string

const (
	// LRU evicts the key that has not been read or written for the longest time.
	LRU PolicyType = "LRU"

	// LFU evicts the key read the fewest times; ties go to the oldest.
	LFU PolicyType = "LFU"

	// FIFO evicts the oldest inserted key regardless of access.
	FIFO PolicyType = "FIFO"
)

var ErrUnknownPolicy = errors.New("unknown eviction policy")

// ParsePolicyType accepts a policy name in any case.
func ParsePolicyType(s string) (PolicyType, error) {
	switch t := PolicyType(strings.ToUpper(strings.TrimSpace(s))); t {
	case LRU, LFU, FIFO:
		return t, nil
	}
	return "", errors.Wrapf(ErrUnknownPolicy, "%q", s)
}

// New creates a fresh policy instance. Every shard gets its own.
func New(t PolicyType) (Policy, error) {
	switch t {
	case LRU:
		return newLRU(), nil
	case LFU:
		return newLFU(), nil
	case FIFO:
		return newFIFO(), nil
	}
	return nil, errors.Wrapf(ErrUnknownPolicy, "%q", string(t))
}
