package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the data pipeline

var (
	// Upstream API metrics
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtiq_api_calls_total",
			Help: "Total number of stats.nba.com API calls",
		},
		[]string{"endpoint", "status"},
	)

	// Job metrics
	JobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtiq_job_runs_total",
			Help: "Total number of sync job runs",
		},
		[]string{"job", "status"},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "courtiq_job_duration_seconds",
			Help:    "Duration of sync job runs in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600, 1800},
		},
		[]string{"job"},
	)

	// Upsert metrics
	UpsertChunksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtiq_upsert_chunks_total",
			Help: "Total number of upsert chunk statements by table",
		},
		[]string{"table", "status"},
	)

	RowsUpsertedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtiq_rows_upserted_total",
			Help: "Total number of rows applied via upsert chunks",
		},
		[]string{"table"},
	)

	// System metrics
	SystemUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "courtiq_uptime_seconds",
			Help: "Worker uptime in seconds",
		},
	)
)
