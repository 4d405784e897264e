package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/trophic/pkg/errors"
)

// Metrics implements every hook interface on a private Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry

	LevelsTotal     *prometheus.CounterVec
	LevelDuration   prometheus.Histogram
	LevelGraphNodes prometheus.Histogram
	RendersTotal    *prometheus.CounterVec
	RenderDuration  *prometheus.HistogramVec
	CacheLookups    *prometheus.CounterVec
	CacheWriteBytes *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
	HTTPLatency     *prometheus.HistogramVec
}

// NewMetrics creates a Metrics with all collectors registered.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		LevelsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trophic_levels_total",
				Help: "Leveling runs by outcome code",
			},
			[]string{"outcome"},
		),
		LevelDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "trophic_level_duration_seconds",
			Help:    "Time spent solving for trophic levels",
			Buckets: prometheus.DefBuckets,
		}),
		LevelGraphNodes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "trophic_level_graph_nodes",
			Help:    "Node count of leveled graphs",
			Buckets: []float64{2, 5, 10, 50, 100, 500, 1000, 5000},
		}),
		RendersTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trophic_renders_total",
				Help: "Render runs by format and outcome",
			},
			[]string{"format", "outcome"},
		),
		RenderDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "trophic_render_duration_seconds",
				Help:    "Time spent rendering",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format"},
		),
		CacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trophic_cache_lookups_total",
				Help: "Cache lookups by key type and result",
			},
			[]string{"key_type", "result"},
		),
		CacheWriteBytes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trophic_cache_write_bytes_total",
				Help: "Bytes written to the cache",
			},
			[]string{"key_type"},
		),
		HTTPRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trophic_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "trophic_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// outcome labels an error by its code, or "ok".
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if code := errors.GetCode(err); code != "" {
		return string(code)
	}
	return "error"
}

func (m *Metrics) OnLevelStart(_ context.Context, nodes, _ int) {
	m.LevelGraphNodes.Observe(float64(nodes))
}

func (m *Metrics) OnLevelComplete(_ context.Context, _ int, d time.Duration, err error) {
	m.LevelsTotal.WithLabelValues(outcome(err)).Inc()
	m.LevelDuration.Observe(d.Seconds())
}

func (m *Metrics) OnRenderStart(context.Context, string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	m.RendersTotal.WithLabelValues(format, outcome(err)).Inc()
	m.RenderDuration.WithLabelValues(format).Observe(d.Seconds())
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheLookups.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheLookups.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.CacheWriteBytes.WithLabelValues(keyType).Add(float64(size))
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ PipelineHooks = (*Metrics)(nil)
	_ CacheHooks    = (*Metrics)(nil)
	_ HTTPHooks     = (*Metrics)(nil)
)
