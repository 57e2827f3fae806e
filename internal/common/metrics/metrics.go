// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	TenderAnalyses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tender_analyses_total",
			Help: "Tender analyses by resulting eligibility status",
		},
		[]string{"eligibility_status"},
	)

	TenderMatchPercentage = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tender_match_percentage",
			Help:    "Distribution of tender match percentages",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	TenderNotRelevant = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tender_not_relevant_total",
			Help: "Tenders excluded by a negative keyword, by keyword",
		},
		[]string{"keyword"},
	)

	RescoreTenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tender_rescore_tenders_total",
			Help: "Tenders processed by re-scoring batches, by outcome",
		},
		[]string{"outcome"},
	)

	CorrigendaDetected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tender_corrigenda_detected_total",
			Help: "Re-published tenders with at least one amended field",
		},
	)
)

// JobStarted marks a job active and returns a func that records its completion.
// Pass an empty error code for success.
func JobStarted(taskType string) func(errorCode string) {
	start := time.Now()
	WorkerJobsActive.WithLabelValues(taskType).Inc()
	return func(errorCode string) {
		WorkerJobsActive.WithLabelValues(taskType).Dec()
		WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(start).Seconds())
		if errorCode == "" {
			WorkerJobsCompleted.WithLabelValues(taskType).Inc()
			return
		}
		WorkerJobsFailed.WithLabelValues(taskType, errorCode).Inc()
	}
}

// RecordAnalysis records the outcome of one tender analysis.
func RecordAnalysis(eligibilityStatus string, matchPercentage int, notRelevantKeyword *string) {
	TenderAnalyses.WithLabelValues(eligibilityStatus).Inc()
	TenderMatchPercentage.Observe(float64(matchPercentage))
	if notRelevantKeyword != nil {
		TenderNotRelevant.WithLabelValues(*notRelevantKeyword).Inc()
	}
}
