package faqdex

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// outcome labels an SDK call in metrics and logs.
type outcome string

const (
	outcomeOK       outcome = "ok"
	outcomeAnswered outcome = "answered"
	outcomeNoMatch  outcome = "no_match"
	outcomeEmpty    outcome = "empty"
	outcomeError    outcome = "error"
)

// answerOutcome classifies an Ask result.
func answerOutcome(a *Answer, empty bool, err error) outcome {
	switch {
	case err != nil:
		return outcomeError
	case empty:
		return outcomeEmpty
	case !a.Matched():
		return outcomeNoMatch
	default:
		return outcomeAnswered
	}
}

func callOutcome(err error) outcome {
	if err != nil {
		return outcomeError
	}
	return outcomeOK
}

// sdkMetrics are the collectors behind WithPrometheus.
type sdkMetrics struct {
	calls     *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	citations prometheus.Histogram
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "faqdex",
			Subsystem: "sdk",
			Name:      "calls_total",
			Help:      "SDK calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "faqdex",
			Subsystem: "sdk",
			Name:      "call_duration_seconds",
			Help:      "SDK call duration in seconds.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"operation"}),
		citations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "faqdex",
			Subsystem: "sdk",
			Name:      "citations_per_answer",
			Help:      "Citations returned per answered question.",
			Buckets:   []float64{1, 2, 3, 5, 10, 20},
		}),
	}
	if err := registerOrReuse(reg, &m.calls); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.citations); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers c, or points c at the collector already
// registered under the same descriptor.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("faqdex: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("faqdex: metric already registered as %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

// observer records SDK calls. A nil observer, logger or metrics set is a no-op.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

// observe records a finished call.
func (o *observer) observe(op string, start time.Time, out outcome, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)

	if o.metrics != nil {
		o.metrics.calls.WithLabelValues(op, string(out)).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	}
	if o.logger == nil {
		return
	}
	if err != nil {
		o.logger.Warn("faqdex call failed", "op", op, "duration", dur, "error", err)
		return
	}
	o.logger.Debug("faqdex call", "op", op, "outcome", string(out), "duration", dur)
}

// observeAnswer records an Ask call, including its citation count.
func (o *observer) observeAnswer(start time.Time, a *Answer, empty bool, err error) {
	out := answerOutcome(a, empty, err)
	o.observe("ask", start, out, err)
	if o != nil && o.metrics != nil && out == outcomeAnswered {
		o.metrics.citations.Observe(float64(len(a.Citations)))
	}
}
