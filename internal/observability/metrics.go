// Package observability provides logging, metrics, and tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RegistrationsTotal counts account registrations by outcome.
	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnhub_registrations_total",
		Help: "Total number of registration attempts by outcome",
	}, []string{"outcome"})

	// LoginsTotal counts login attempts by outcome.
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnhub_logins_total",
		Help: "Total number of login attempts by outcome",
	}, []string{"outcome"})

	// AuthFailuresTotal counts bearer-token rejections by reason.
	AuthFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnhub_auth_failures_total",
		Help: "Total number of rejected requests at the auth middleware",
	}, []string{"reason"})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learnhub_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)
