package web

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	getStandingsRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contest_relay",
			Subsystem: "standings",
			Name:      "get_standings_requests_total",
			Help:      "GetStandings requests total.",
		},
		[]string{"code"},
	)
	getStandingsDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "contest_relay",
			Subsystem: "standings",
			Name:      "get_standings_duration_seconds",
			Help:      "GetStandings duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"code"},
	)
)

func init() {
	prometheus.MustRegister(
		getStandingsRequestsTotal,
		getStandingsDurationSeconds,
	)
}

func observeGetStandings(code int, start time.Time) {
	codeStr := strconv.Itoa(code)
	getStandingsRequestsTotal.WithLabelValues(codeStr).Inc()
	getStandingsDurationSeconds.WithLabelValues(codeStr).Observe(time.Since(start).Seconds())
}
