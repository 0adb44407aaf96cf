package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus exports cache events as one counter vector labelled by event.
type Prometheus struct {
	events *prometheus.CounterVec

	hit, miss, eviction, expire, load prometheus.Counter
}

// NewPrometheus registers <namespace>_cache_events_total on reg.
func NewPrometheus(reg prometheus.Registerer, namespace string) (*Prometheus, error) {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "events_total",
		Help:      "Cache events by type.",
	}, []string{"event"})
	if err := reg.Register(events); err != nil {
		return nil, errors.Wrap(err, "register cache metrics")
	}

	return &Prometheus{
		events:   events,
		hit:      events.WithLabelValues("hit"),
		miss:     events.WithLabelValues("miss"),
		eviction: events.WithLabelValues("eviction"),
		expire:   events.WithLabelValues("expire"),
		load:     events.WithLabelValues("load"),
	}, nil
}

func (p *Prometheus) Hit()      { p.hit.Inc() }
func (p *Prometheus) Miss()     { p.miss.Inc() }
func (p *Prometheus) Eviction() { p.eviction.Inc() }
func (p *Prometheus) Expire()   { p.expire.Inc() }
func (p *Prometheus) Load()     { p.load.Inc() }
