package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Business metrics
	SessionsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "batterypass_sessions_ingested_total",
		Help: "Charging sessions accepted during ingest",
	})

	SessionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "batterypass_sessions_rejected_total",
		Help: "Charging sessions rejected by validation",
	})

	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "batterypass_analyses_total",
		Help: "Completed health analyses by resulting grade",
	}, []string{"grade"})

	PassportsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "batterypass_passports_issued_total",
		Help: "Battery passports issued",
	})

	PassportVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "batterypass_passport_verifications_total",
		Help: "Passport verification requests by outcome",
	}, []string{"result"})

	// Infrastructure metrics
	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "batterypass_analysis_duration_seconds",
		Help:    "Wall time of the health analysis pipeline",
		Buckets: prometheus.DefBuckets,
	})

	DatabaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "batterypass_database_latency_seconds",
		Help:    "Database query latency",
		Buckets: prometheus.DefBuckets,
	})
)
