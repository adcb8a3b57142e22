package tableau

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// StageMetrics exports per-frame counters of a Stage to Prometheus.
type StageMetrics struct {
	frames        prometheus.Counter
	fullRedraws   prometheus.Counter
	redrawEntries prometheus.Counter
	culledActors  prometheus.Counter
	mappedActors  prometheus.Gauge
	flushSeconds  prometheus.Histogram
}

// NewStageMetrics creates the stage collectors and registers them with reg.
// name is attached to every series as the "stage" label.
func NewStageMetrics(reg prometheus.Registerer, name string) (*StageMetrics, error) {
	labels := prometheus.Labels{"stage": name}
	m := &StageMetrics{
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "tableau_frames_total",
			Help:        "Total number of painted frames",
			ConstLabels: labels,
		}),
		fullRedraws: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "tableau_full_redraws_total",
			Help:        "Total number of frames that repainted the whole stage",
			ConstLabels: labels,
		}),
		redrawEntries: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "tableau_redraw_entries_total",
			Help:        "Total number of actor redraws queued",
			ConstLabels: labels,
		}),
		culledActors: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "tableau_culled_actors_total",
			Help:        "Total number of actors skipped because they were outside the painted area",
			ConstLabels: labels,
		}),
		mappedActors: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "tableau_mapped_actors",
			Help:        "Number of mapped actors on the stage",
			ConstLabels: labels,
		}),
		flushSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "tableau_flush_seconds",
			Help:        "Time spent turning queued redraws into damage",
			Buckets:     prometheus.ExponentialBuckets(0.00001, 4, 8),
			ConstLabels: labels,
		}),
	}
	for _, c := range []prometheus.Collector{
		m.frames, m.fullRedraws, m.redrawEntries, m.culledActors, m.mappedActors, m.flushSeconds,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("tableau: register stage metrics: %w", err)
		}
	}
	return m, nil
}
