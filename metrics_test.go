package collage

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecordRenders(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("NewMetrics() = %v", err)
	}

	p := newLoaded(t, 2, 2, WithMetrics(m))
	mustDo(t, p.AddLayer("a"))
	mustDo(t, p.SetFilter("a", "red-component"))
	mustDo(t, p.AddLayer("b"))
	for range 3 {
		_, err := p.Render()
		mustDo(t, err)
	}

	if got := testutil.ToFloat64(m.renders); got != 3 {
		t.Errorf("renders_total = %v, want 3", got)
	}
	// The second and third renders reuse the cached composite.
	if got := testutil.ToFloat64(m.filterApplications.WithLabelValues("red-component")); got != 1 {
		t.Errorf("filter_applications_total{red-component} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.filterApplications.WithLabelValues("normal")); got != 1 {
		t.Errorf("filter_applications_total{normal} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.cacheHits); got != 2 {
		t.Errorf("render_cache_hits_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.layers); got != 3 {
		t.Errorf("layers = %v, want 3", got)
	}
	if n := testutil.CollectAndCount(m.renderDuration); n != 1 {
		t.Errorf("render_duration_seconds series = %d, want 1", n)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() = %v", err)
	}
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"collage_renders_total",
		"collage_render_duration_seconds",
		"collage_filter_applications_total",
		"collage_layers",
		"collage_render_cache_hits_total",
	} {
		if !names[want] {
			t.Errorf("registry missing %s", want)
		}
	}
}

func TestNewMetricsReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewMetrics(reg)
	mustDo(t, err)
	b, err := NewMetrics(reg)
	mustDo(t, err)

	b.renders.Inc()
	if got := testutil.ToFloat64(a.renders); got != 1 {
		t.Errorf("second NewMetrics did not share collectors: %v", got)
	}
}

func TestNewMetricsConflict(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "collage_renders_total",
		Help: "conflicting type",
	}))
	if _, err := NewMetrics(reg); err == nil {
		t.Error("NewMetrics() succeeded against a conflicting collector")
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.observeRender(0, 1)
	m.observeFilter(0)
	m.observeCacheHit()

	p := newLoaded(t, 1, 1, WithMetrics(nil))
	if _, err := p.Render(); err != nil {
		t.Fatalf("Render() = %v", err)
	}
}

func TestUnregisteredMetrics(t *testing.T) {
	m, err := NewMetrics(nil)
	mustDo(t, err)
	p := newLoaded(t, 1, 1, WithMetrics(m))
	_, err = p.Render()
	mustDo(t, err)
	if got := testutil.ToFloat64(m.renders); got != 1 {
		t.Errorf("renders_total = %v, want 1", got)
	}
}
