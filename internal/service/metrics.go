package service

import (
	"github.com/prometheus/client_golang/prometheus"

	"applyapi/internal/apperr"
	"applyapi/internal/model"
)

// Metrics holds the lifecycle counters. A nil *Metrics records nothing.
type Metrics struct {
	submissions          prometheus.Counter
	rejections           *prometheus.CounterVec
	transitions          *prometheus.CounterVec
	notificationFailures *prometheus.CounterVec
}

// NewMetrics registers the lifecycle counters on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		submissions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "applications_submitted_total",
			Help: "Applications accepted and stored.",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "application_operation_failures_total",
			Help: "Lifecycle operations that failed, by operation and error kind.",
		}, []string{"operation", "kind"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "application_status_transitions_total",
			Help: "Status updates applied, by target status.",
		}, []string{"status"}),
		notificationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "application_notification_failures_total",
			Help: "Notifications that could not be recorded, by operation.",
		}, []string{"operation"}),
	}
	for _, c := range []prometheus.Collector{m.submissions, m.rejections, m.transitions, m.notificationFailures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) submitted() {
	if m == nil {
		return
	}
	m.submissions.Inc()
}

func (m *Metrics) failed(op string, err error) {
	if m == nil || err == nil {
		return
	}
	kind := apperr.KindOf(err)
	if kind == "" {
		kind = "UNKNOWN"
	}
	m.rejections.WithLabelValues(op, string(kind)).Inc()
}

func (m *Metrics) transitioned(s model.Status) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(string(s)).Inc()
}

func (m *Metrics) notificationFailed(op string) {
	if m == nil {
		return
	}
	m.notificationFailures.WithLabelValues(op).Inc()
}
