package collage

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/gg-collage/internal/filter"
)

// Metrics holds the Prometheus collectors updated by Project.Render.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	renders            prometheus.Counter
	renderDuration     prometheus.Histogram
	filterApplications *prometheus.CounterVec
	layers             prometheus.Gauge
	cacheHits          prometheus.Counter
}

// NewMetrics creates the render collectors and registers them with reg.
// A nil reg leaves the collectors unregistered, which is useful in tests.
// Registering twice against the same registry returns the existing
// collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		renders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "collage",
			Name:      "renders_total",
			Help:      "Number of completed project renders.",
		}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "collage",
			Name:      "render_duration_seconds",
			Help:      "Wall time of a full project render.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
		filterApplications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "collage",
			Name:      "filter_applications_total",
			Help:      "Number of layer filter applications by filter tag.",
		}, []string{"filter"}),
		layers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "collage",
			Name:      "layers",
			Help:      "Layers in the most recently rendered project, background included.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "collage",
			Name:      "render_cache_hits_total",
			Help:      "Renders that resumed from a cached composite.",
		}),
	}
	if reg == nil {
		return m, nil
	}

	var err error
	if m.renders, err = register(reg, m.renders); err != nil {
		return nil, err
	}
	if m.renderDuration, err = register(reg, m.renderDuration); err != nil {
		return nil, err
	}
	if m.filterApplications, err = register(reg, m.filterApplications); err != nil {
		return nil, err
	}
	if m.layers, err = register(reg, m.layers); err != nil {
		return nil, err
	}
	if m.cacheHits, err = register(reg, m.cacheHits); err != nil {
		return nil, err
	}
	return m, nil
}

// register adds c to reg, reusing an identical collector that is already
// registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, fmt.Errorf("collage: register metrics: %w", err)
	}
	return c, nil
}

func (m *Metrics) observeFilter(f filter.Filter) {
	if m == nil {
		return
	}
	m.filterApplications.WithLabelValues(f.String()).Inc()
}

func (m *Metrics) observeRender(d time.Duration, layers int) {
	if m == nil {
		return
	}
	m.renders.Inc()
	m.renderDuration.Observe(d.Seconds())
	m.layers.Set(float64(layers))
}

func (m *Metrics) observeCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}
