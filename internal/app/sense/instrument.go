package sense

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	stepDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "audiosense",
		Subsystem: "pipeline",
		Name:      "step_duration_seconds",
		Help:      "Wall time of each pipeline step.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"step"})

	invocationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "audiosense",
		Subsystem: "pipeline",
		Name:      "invocations_total",
		Help:      "Pipeline invocations by outcome.",
	}, []string{"outcome"})

	segmentsTranscribed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "audiosense",
		Subsystem: "pipeline",
		Name:      "segments_transcribed_total",
		Help:      "Audio segments successfully transcribed.",
	})
)

// StepTimer is the cross-cutting instrumentation hook invoked around each
// major pipeline step: it records a duration histogram sample and a debug log
// line per step.
type StepTimer struct {
	logger *zap.SugaredLogger
}

// NewStepTimer creates a StepTimer.
func NewStepTimer(logger *zap.Logger) *StepTimer {
	return &StepTimer{logger: logger.Sugar()}
}

// Track starts timing a step and returns the function that finishes it.
// Usage: defer t.Track("decode")()
func (t *StepTimer) Track(step string) func() {
	start := time.Now()
	return func() {
		elapsed := time.Since(start)
		stepDuration.WithLabelValues(step).Observe(elapsed.Seconds())
		t.logger.Debugw("pipeline step finished",
			"step", step,
			"elapsed_ms", elapsed.Milliseconds())
	}
}

func recordInvocation(outcome string) {
	invocationsTotal.WithLabelValues(outcome).Inc()
}
