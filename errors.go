package cache

import "github.com/pkg/errors"

var (
	// ErrStoreUnavailable is returned by every operation once the cache
	// has been closed.
	ErrStoreUnavailable = errors.New("cache store unavailable")

	// ErrTypeMismatch is returned when a stored value cannot be read as
	// the requested type. The stored entry is left untouched.
	ErrTypeMismatch = errors.New("cached value has a different type")
)
