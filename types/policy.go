package types

import "time"

// DefaultAbsoluteExpiration applies to every write that does not choose
// its own absolute deadline.
const DefaultAbsoluteExpiration = 60 * time.Second

/*
ExpirationPolicy describes how long a written entry stays valid.

  - Absolute is relative to the write. It only applies when HasAbsolute is set.
    Zero or negative values produce an entry that is already expired.
  - Idle is the sliding window measured from the last read. Zero disables it.

Both deadlines are independent: the entry expires on whichever comes first.
*/
type ExpirationPolicy struct {
	Absolute    time.Duration
	HasAbsolute bool
	Idle        time.Duration
}

// DefaultExpirationPolicy is 60s absolute, no idle expiry.
func DefaultExpirationPolicy() ExpirationPolicy {
	return ExpirationPolicy{Absolute: DefaultAbsoluteExpiration, HasAbsolute: true}
}
