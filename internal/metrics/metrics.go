// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth_service"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// AuthEvents counts outcomes of the authentication operations, labelled
	// with the same event names the logs use.
	AuthEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_total",
		Help:      "Authentication and password reset outcomes.",
	}, []string{"event"})

	MailDispatch = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_dispatch_total",
		Help:      "Reset emails handed to a transport, by transport and result.",
	}, []string{"transport", "result"})
)

func RecordAuthEvent(event string) {
	AuthEvents.WithLabelValues(event).Inc()
}

func RecordMailDispatch(transport string, err error) {
	result := "sent"
	if err != nil {
		result = "failed"
	}
	MailDispatch.WithLabelValues(transport, result).Inc()
}
