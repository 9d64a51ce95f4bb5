package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	manualTransactions *prometheus.CounterVec
	uploadEvents       *prometheus.CounterVec
	batchOutcomes      *prometheus.CounterVec
	batchSize          prometheus.Histogram
	submissionDuration prometheus.Histogram
	overviewDuration   prometheus.Histogram
	overviewRowCount   prometheus.Gauge
	performanceFanout  prometheus.Histogram
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		manualTransactions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "manual_transactions_total",
				Help: "Total number of manually entered transactions by outcome",
			},
			[]string{"status"},
		),
		uploadEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upload_events_total",
				Help: "Total number of CSV upload previews by outcome",
			},
			[]string{"status"},
		),
		batchOutcomes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "batch_submissions_total",
				Help: "Total number of batch submissions by outcome",
			},
			[]string{"status"},
		),
		batchSize: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "upload_batch_size",
				Help:    "Number of records per previewed upload batch",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		submissionDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "batch_submission_duration_milliseconds",
				Help:    "Sequential batch submission duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 14),
			},
		),
		overviewDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "overview_build_duration_milliseconds",
				Help:    "Dashboard overview assembly duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		overviewRowCount: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "overview_row_count",
				Help: "Row count of the most recently built dashboard overview",
			},
		),
		performanceFanout: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "performance_fanout_duration_milliseconds",
				Help:    "Concurrent investment performance fetch duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	status := tags["status"]

	switch name {
	case "ingest.manual":
		if status != "" {
			m.manualTransactions.WithLabelValues(status).Inc()
		}
	case "ingest.upload":
		if status != "" {
			m.uploadEvents.WithLabelValues(status).Inc()
		}
	case "ingest.batch":
		if status != "" {
			m.batchOutcomes.WithLabelValues(status).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "ingest.submission":
		m.submissionDuration.Observe(float64(duration.Milliseconds()))
	case "overview.build":
		m.overviewDuration.Observe(float64(duration.Milliseconds()))
	case "performance.fanout":
		m.performanceFanout.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "overview.row_count":
		m.overviewRowCount.Set(value)
	case "ingest.batch_size":
		m.batchSize.Observe(value)
	}
}
