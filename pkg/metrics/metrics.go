package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector provides application metrics collection
type Collector struct {
	// API Metrics
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec
	APIErrorsTotal     *prometheus.CounterVec

	// Analysis Metrics
	AnalysesTotal       *prometheus.CounterVec
	AnalysisErrorsTotal *prometheus.CounterVec
	AnalysisDuration    prometheus.Histogram
	AnomaliesTotal      prometheus.Counter
	EfficiencyScore     prometheus.Histogram
	ConfidencePercent   prometheus.Histogram

	// Session Metrics
	ActiveSessions prometheus.Gauge
}

// NewCollector creates a new metrics collector
func NewCollector(namespace string) *Collector {
	return &Collector{
		APIRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of API requests by endpoint, method, and status",
			},
			[]string{"endpoint", "method", "status"},
		),

		APIRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1.0},
			},
			[]string{"endpoint"},
		),

		APIErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_errors_total",
				Help:      "Total number of API errors by type",
			},
			[]string{"error_type", "endpoint"},
		),

		AnalysesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analyses_total",
				Help:      "Total number of analyzed readings by alert level",
			},
			[]string{"alert_level"},
		),

		AnalysisErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analysis_errors_total",
				Help:      "Total number of rejected readings by error type",
			},
			[]string{"error_type"},
		),

		AnalysisDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analysis_duration_seconds",
				Help:      "Duration of the full analysis pipeline in seconds",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
		),

		AnomaliesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "anomalies_total",
				Help:      "Total number of usage spike anomalies detected",
			},
		),

		EfficiencyScore: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "efficiency_score",
				Help:      "Distribution of efficiency scores across analyzed readings",
				Buckets:   []float64{0, 10, 25, 50, 70, 80, 90, 95, 99, 100},
			},
		),

		ConfidencePercent: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "recommendation_confidence_percent",
				Help:      "Distribution of recommendation confidence percentages",
				Buckets:   []float64{30, 40, 45, 55, 60, 70, 85, 100},
			},
		),

		ActiveSessions: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_sessions",
				Help:      "Number of active monitoring sessions",
			},
		),
	}
}

// Timer provides timing functionality for operations
type Timer struct {
	start    time.Time
	observer prometheus.Observer
}

// NewTimer creates a new timer
func (c *Collector) NewTimer(histogram prometheus.Observer) *Timer {
	return &Timer{
		start:    time.Now(),
		observer: histogram,
	}
}

// ObserveDuration records the elapsed time since timer creation
func (t *Timer) ObserveDuration() time.Duration {
	duration := time.Since(t.start)
	if t.observer != nil {
		t.observer.Observe(duration.Seconds())
	}
	return duration
}

// RecordAPIRequest increments API request counter
func (c *Collector) RecordAPIRequest(endpoint, method, status string) {
	c.APIRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
}

// RecordAPIError increments API error counter
func (c *Collector) RecordAPIError(errorType, endpoint string) {
	c.APIErrorsTotal.WithLabelValues(errorType, endpoint).Inc()
}

// RecordAnalysis records the outcome of one analyzed reading
func (c *Collector) RecordAnalysis(alertLevel string, anomaly bool, score float64, confidence int, duration time.Duration) {
	c.AnalysesTotal.WithLabelValues(alertLevel).Inc()
	c.AnalysisDuration.Observe(duration.Seconds())
	c.EfficiencyScore.Observe(score)
	c.ConfidencePercent.Observe(float64(confidence))

	if anomaly {
		c.AnomaliesTotal.Inc()
	}
}

// RecordAnalysisError increments the rejected-reading counter
func (c *Collector) RecordAnalysisError(errorType string) {
	c.AnalysisErrorsTotal.WithLabelValues(errorType).Inc()
}

// SetActiveSessions updates the active session gauge
func (c *Collector) SetActiveSessions(n int) {
	c.ActiveSessions.Set(float64(n))
}
