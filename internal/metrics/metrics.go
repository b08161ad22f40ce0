package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "question_bank"

// Login results.
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
)

// Metrics groups the Prometheus collectors used across services.
type Metrics struct {
	Logins            *prometheus.CounterVec
	ActiveSessions    prometheus.Gauge
	QuestionMutations *prometheus.CounterVec
	HTTPRequests      *prometheus.CounterVec
}

// New registers collectors on reg. A nil reg builds unregistered collectors (handy in tests).
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_logins_total",
			Help:      "Admin login attempts by result.",
		}, []string{"result"}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Sessions currently held in the session table.",
		}),
		QuestionMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "question_mutations_total",
			Help:      "Questions touched by mutating operations.",
		}, []string{"op"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "status"}),
	}
}
