// Package metrics holds the prometheus collectors of the ordering application service.
package metrics

import (
	"errors"
	"time"

	"ordering/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK                    = "ok"
	OutcomeNotFound              = "not_found"
	OutcomeInvalidArgument       = "invalid_argument"
	OutcomeInvalidState          = "invalid_state"
	OutcomeCurrencyMismatch      = "currency_mismatch"
	OutcomeBusinessRuleViolation = "business_rule_violation"
	OutcomeConflict              = "conflict"
	OutcomeError                 = "error"
)

type UseCaseMetrics struct {
	Calls     *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

// NewUseCaseMetrics registers the collectors with reg. Pass prometheus.DefaultRegisterer
// in production and a fresh prometheus.NewRegistry() in tests.
func NewUseCaseMetrics(reg prometheus.Registerer) *UseCaseMetrics {
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ordering",
		Subsystem: "order_service",
		Name:      "use_case_calls_total",
		Help:      "Total number of order use case invocations by outcome.",
	}, []string{"use_case", "outcome"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ordering",
		Subsystem: "order_service",
		Name:      "use_case_duration_ms",
		Help:      "Order use case latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	}, []string{"use_case"})

	reg.MustRegister(calls, latency)
	return &UseCaseMetrics{Calls: calls, LatencyMS: latency}
}

// Observe records one finished invocation of useCase that started at start.
func (m *UseCaseMetrics) Observe(useCase string, start time.Time, err error) {
	m.Calls.WithLabelValues(useCase, Outcome(err)).Inc()
	m.LatencyMS.WithLabelValues(useCase).Observe(float64(time.Since(start).Milliseconds()))
}

// Outcome classifies err by the error taxonomy of internal/pkg/errs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, errs.ErrObjectNotFound):
		return OutcomeNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return OutcomeInvalidArgument
	case errors.Is(err, errs.ErrInvalidState):
		return OutcomeInvalidState
	case errors.Is(err, errs.ErrCurrencyMismatch):
		return OutcomeCurrencyMismatch
	case errors.Is(err, errs.ErrBusinessRuleViolation):
		return OutcomeBusinessRuleViolation
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return OutcomeConflict
	default:
		return OutcomeError
	}
}
