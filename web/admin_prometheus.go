package web

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var rejudgeSubmissionRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "contest_relay",
		Subsystem: "admin",
		Name:      "rejudge_submission_requests_total",
		Help:      "RejudgeSubmission requests total.",
	},
	[]string{"code", "reason"},
)

func init() {
	prometheus.MustRegister(rejudgeSubmissionRequestsTotal)
}

func observeRejudgeSubmission(code int, reason string) {
	rejudgeSubmissionRequestsTotal.WithLabelValues(strconv.Itoa(code), reason).Inc()
}
