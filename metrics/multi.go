package metrics

import "github.com/krisalay/ttl-cache/types"

// Multi forwards every event to each member, e.g. Counters for a local
// summary alongside Prometheus for scraping.
type Multi []types.Metrics

func (m Multi) Hit() {
	for _, s := range m {
		s.Hit()
	}
}

func (m Multi) Miss() {
	for _, s := range m {
		s.Miss()
	}
}

func (m Multi) Eviction() {
	for _, s := range m {
		s.Eviction()
	}
}

func (m Multi) Expire() {
	for _, s := range m {
		s.Expire()
	}
}

func (m Multi) Load() {
	for _, s := range m {
		s.Load()
	}
}
