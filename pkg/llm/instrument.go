package llm

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	dispatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gradekit",
		Subsystem: "llm",
		Name:      "dispatch_duration_seconds",
		Help:      "Duration of LLM dispatch requests",
	}, []string{"provider", "model"})

	dispatchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gradekit",
		Subsystem: "llm",
		Name:      "dispatch_failures_total",
		Help:      "Number of failed LLM dispatch requests",
	}, []string{"provider", "model"})
)

// instrumented wraps a provider client with Prometheus metrics and tracing.
// Every client built by New passes through here so the observability surface
// is identical across providers.
type instrumented struct {
	inner  Client
	tracer trace.Tracer
}

func instrument(inner Client) Client {
	return &instrumented{
		inner:  inner,
		tracer: otel.Tracer("github.com/gradekit/gradekit-api/pkg/llm"),
	}
}

func (i *instrumented) Complete(parent context.Context, prompt string) (string, error) {
	ctx, span := i.tracer.Start(parent, "llm.complete", trace.WithAttributes(
		attribute.String("provider", i.inner.Provider()),
		attribute.String("model", i.inner.ModelName()),
		attribute.Int("prompt_length", len(prompt)),
	))
	defer span.End()

	start := time.Now()
	reply, err := i.inner.Complete(ctx, prompt)
	dispatchDuration.WithLabelValues(i.inner.Provider(), i.inner.ModelName()).Observe(time.Since(start).Seconds())

	if err != nil {
		dispatchFailures.WithLabelValues(i.inner.Provider(), i.inner.ModelName()).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	span.SetAttributes(attribute.Int("reply_length", len(reply)))
	return reply, nil
}

func (i *instrumented) Provider() string  { return i.inner.Provider() }
func (i *instrumented) ModelName() string { return i.inner.ModelName() }
