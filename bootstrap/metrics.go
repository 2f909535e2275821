package bootstrap

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess    = "success"
	outcomeAuthFailed = "auth_failed"
	outcomeError      = "error"
	decisionNone      = "none"
)

// Metrics records workflow outcomes.
type Metrics struct {
	Invocations *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
}

// NewMetrics creates the workflow collectors and registers them with reg when
// it is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "uigen",
			Subsystem: "bootstrap",
			Name:      "invocations_total",
			Help:      "Sign-in and sign-up workflow invocations by outcome and routing decision.",
		}, []string{"action", "outcome", "decision"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "uigen",
			Subsystem: "bootstrap",
			Name:      "duration_seconds",
			Help:      "Time from invocation until the workflow settles.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"action"}),
	}
	if reg != nil {
		reg.MustRegister(m.Invocations, m.Duration)
	}
	return m
}

func (m *Metrics) observe(action Action, outcome string, d Decision, elapsed time.Duration) {
	if m == nil {
		return
	}
	decision := decisionNone
	if d != nil {
		decision = d.Kind()
	}
	m.Invocations.WithLabelValues(string(action), outcome, decision).Inc()
	m.Duration.WithLabelValues(string(action)).Observe(elapsed.Seconds())
}
