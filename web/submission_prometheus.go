package web

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	createSubmissionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contest_relay",
			Subsystem: "submission",
			Name:      "create_submission_requests_total",
			Help:      "CreateSubmission requests total.",
		},
		[]string{"code", "reason", "language"},
	)
	createSubmissionDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "contest_relay",
			Subsystem: "submission",
			Name:      "create_submission_duration_seconds",
			Help:      "CreateSubmission duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"code", "reason", "language"},
	)
)

func init() {
	prometheus.MustRegister(
		createSubmissionRequestsTotal,
		createSubmissionDurationSeconds,
	)
}

func observeCreateSubmission(code int, reason, language string, start time.Time) {
	codeStr := strconv.Itoa(code)
	createSubmissionRequestsTotal.WithLabelValues(codeStr, reason, language).Inc()
	createSubmissionDurationSeconds.WithLabelValues(codeStr, reason, language).Observe(time.Since(start).Seconds())
}
