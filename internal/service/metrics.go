package service

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "planningp"

type metricsObserver struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetricsObserver registers use-case counters and durations on reg.
// Outcome is "ok" or "error".
func NewMetricsObserver(reg prometheus.Registerer) (UseCaseObserver, error) {
	o := &metricsObserver{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "use_case_total",
			Help:      "Editor and period operations by outcome.",
		}, []string{"use_case", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "use_case_duration_seconds",
			Help:      "Time spent in editor and period operations, including the save.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"use_case"}),
	}
	if err := reg.Register(o.total); err != nil {
		return nil, err
	}
	if err := reg.Register(o.duration); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *metricsObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	outcome := "ok"
	if !event.Success {
		outcome = "error"
	}
	o.total.WithLabelValues(event.Name, outcome).Inc()
	o.duration.WithLabelValues(event.Name).Observe(event.Duration.Seconds())
}
