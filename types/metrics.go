package types

/*
Metrics is what the cache reports about itself.
Each method is one event in the cache lifecycle and is called synchronously
from the operation that caused it, so implementations must be cheap and
safe for concurrent use.
*/
type Metrics interface {

	// Hit is called when a read returns a live value.
	Hit()

	// Miss is called when a read finds nothing, or finds an expired entry.
	Miss()

	// Eviction is called when a key is dropped because its shard is full.
	Eviction()

	// Expire is called when an expired entry is physically removed,
	// either lazily on read or by the sweeper.
	Expire()

	// Load is called every time a get-or-populate factory is invoked.
	Load()
}

// NoopMetrics ignores every event. The engine falls back to it so the
// rest of the code never checks for a nil Metrics.
type NoopMetrics struct{}

func (NoopMetrics) Hit()      {}
func (NoopMetrics) Miss()     {}
func (NoopMetrics) Eviction() {}
func (NoopMetrics) Expire()   {}
func (NoopMetrics) Load()     {}
