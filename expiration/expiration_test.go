package expiration_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/krisalay/ttl-cache/expiration"
	"github.com/krisalay/ttl-cache/types"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestAbsolute(t *testing.T) {
	tests := []struct {
		name     string
		expireAt time.Time
		now      time.Time
		want     bool
	}{
		{name: "no deadline", expireAt: time.Time{}, now: epoch.Add(time.Hour), want: false},
		{name: "before deadline", expireAt: epoch.Add(time.Second), now: epoch, want: false},
		{name: "at deadline", expireAt: epoch, now: epoch, want: true},
		{name: "after deadline", expireAt: epoch, now: epoch.Add(time.Nanosecond), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ent := &types.CacheEntry{AbsoluteExpireAt: tt.expireAt}
			assert.Equal(t, tt.want, expiration.Absolute{}.IsExpired(ent, tt.now))
		})
	}
}

func TestAbsoluteIgnoresReads(t *testing.T) {
	ent := &types.CacheEntry{AbsoluteExpireAt: epoch.Add(time.Second)}
	expiration.Absolute{}.OnAccess(ent, epoch.Add(500*time.Millisecond))
	assert.Equal(t, epoch.Add(time.Second), ent.AbsoluteExpireAt)
}

func TestIdleSlidesOnAccess(t *testing.T) {
	s := expiration.Idle{}
	ent := &types.CacheEntry{IdleExpireAfter: time.Second}
	s.OnWrite(ent, epoch)

	assert.False(t, s.IsExpired(ent, epoch.Add(time.Second)))

	s.OnAccess(ent, epoch.Add(900*time.Millisecond))
	assert.False(t, s.IsExpired(ent, epoch.Add(1800*time.Millisecond)))
	assert.True(t, s.IsExpired(ent, epoch.Add(2*time.Second)))
}

func TestIdleDisabled(t *testing.T) {
	ent := &types.CacheEntry{LastAccessedAt: epoch}
	assert.False(t, expiration.Idle{}.IsExpired(ent, epoch.Add(24*time.Hour)))
}

func TestFirstOf(t *testing.T) {
	s := expiration.Default()
	ent := &types.CacheEntry{
		AbsoluteExpireAt: epoch.Add(10 * time.Second),
		IdleExpireAfter:  2 * time.Second,
	}
	s.OnWrite(ent, epoch)

	// idle wins
	assert.True(t, s.IsExpired(ent, epoch.Add(3*time.Second)))

	// absolute wins even when reads keep the idle window open
	for at := time.Second; at < 10*time.Second; at += time.Second {
		s.OnAccess(ent, epoch.Add(at))
	}
	assert.False(t, s.IsExpired(ent, epoch.Add(9500*time.Millisecond)))
	assert.True(t, s.IsExpired(ent, epoch.Add(10*time.Second)))
}
