package providers

import (
	"skinwatch/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncRunsTotal(outcome string)
	ObserveRunDuration(duration time.Duration)
	IncAlertsTotal(channel string, result string)
	IncCacheHits()
	IncCacheMisses()
	SetLastAlertTime(t time.Time)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	runsTotal       *prometheus.CounterVec
	runDuration     prometheus.Histogram
	alertsTotal     *prometheus.CounterVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	lastAlert       prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncRunsTotal(outcome string) {
	m.runsTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) ObserveRunDuration(duration time.Duration) {
	m.runDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncAlertsTotal(channel string, result string) {
	m.alertsTotal.WithLabelValues(channel, result).Inc()
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) SetLastAlertTime(t time.Time) {
	m.lastAlert.Set(float64(t.Unix()))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "skinwatch_requests_total",
			Help: "Total number of HTTP requests to the status server",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "skinwatch_request_duration_seconds",
			Help:    "Status server request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		runsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "skinwatch_runs_total",
			Help: "Total number of monitor runs by outcome",
		}, []string{"outcome"}),

		runDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "skinwatch_run_duration_seconds",
			Help:    "Duration of monitor runs in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		alertsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "skinwatch_alerts_total",
			Help: "Alert dispatch attempts by channel and result",
		}, []string{"channel", "result"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "skinwatch_cache_hits_total",
			Help: "Total number of owner address cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "skinwatch_cache_misses_total",
			Help: "Total number of owner address cache misses",
		}),

		lastAlert: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "skinwatch_last_alert_timestamp_seconds",
			Help: "Unix time of the last delivered alert",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncRunsTotal(_ string)                            {}
func (n *noopMetrics) ObserveRunDuration(_ time.Duration)               {}
func (n *noopMetrics) IncAlertsTotal(_ string, _ string)                {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) SetLastAlertTime(_ time.Time)                     {}
