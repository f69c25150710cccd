package spinner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	// Ticks counts blocks successfully written to the terminal.
	Ticks prometheus.Counter
	// WriteFailures counts ticks skipped because the write failed.
	WriteFailures prometheus.Counter
	// Added counts entities added.
	Added prometheus.Counter
	// Active tracks entities that are neither stopped nor removed.
	Active prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Ticks: f.NewCounter(prometheus.CounterOpts{
			Namespace: "spinplex",
			Subsystem: "render",
			Name:      "ticks_total",
			Help:      "Blocks written to the terminal",
		}),
		WriteFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: "spinplex",
			Subsystem: "render",
			Name:      "write_failures_total",
			Help:      "Ticks skipped because the terminal write failed",
		}),
		Added: f.NewCounter(prometheus.CounterOpts{
			Namespace: "spinplex",
			Subsystem: "registry",
			Name:      "entities_added_total",
			Help:      "Entities added to a registry",
		}),
		Active: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "spinplex",
			Subsystem: "registry",
			Name:      "entities_active",
			Help:      "Entities currently animating",
		}),
	}
}
