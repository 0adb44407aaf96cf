package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krisalay/ttl-cache/types"
)

var (
	_ types.Metrics = (*Counters)(nil)
	_ types.Metrics = (*Prometheus)(nil)
	_ types.Metrics = Multi(nil)
)

func TestCounters(t *testing.T) {
	var c Counters
	c.Hit()
	c.Hit()
	c.Hit()
	c.Miss()
	c.Eviction()
	c.Expire()
	c.Load()

	s := c.Snapshot()
	assert.Equal(t, Snapshot{Hits: 3, Misses: 1, Evictions: 1, Expirations: 1, Loads: 1}, s)
	assert.InDelta(t, 0.75, s.HitRatio(), 1e-9)
	assert.Zero(t, Snapshot{}.HitRatio())
}

func TestPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewPrometheus(reg, "ttl")
	require.NoError(t, err)

	p.Hit()
	p.Miss()
	p.Miss()
	p.Load()

	assert.Equal(t, 1.0, testutil.ToFloat64(p.hit))
	assert.Equal(t, 2.0, testutil.ToFloat64(p.miss))
	assert.Equal(t, 0.0, testutil.ToFloat64(p.eviction))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.load))

	_, err = NewPrometheus(reg, "ttl")
	assert.Error(t, err, "registering twice must fail")
}

func TestMultiFansOut(t *testing.T) {
	a, b := &Counters{}, &Counters{}
	m := Multi{a, b}

	m.Hit()
	m.Miss()
	m.Eviction()
	m.Expire()
	m.Load()

	want := Snapshot{Hits: 1, Misses: 1, Evictions: 1, Expirations: 1, Loads: 1}
	assert.Equal(t, want, a.Snapshot())
	assert.Equal(t, want, b.Snapshot())
}
