package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"sheetviz/internal/infrastructure"
)

// Telemetry records one span and the request instruments per request.
type Telemetry struct {
	tracer  trace.Tracer
	metrics *infrastructure.RequestMetrics
}

// NewTelemetry creates the telemetry middleware from the OTel providers.
func NewTelemetry(providers *infrastructure.OTelProviders) (*Telemetry, error) {
	metrics, err := infrastructure.NewRequestMetrics(providers.Meter)
	if err != nil {
		return nil, err
	}
	return &Telemetry{tracer: providers.Tracer, metrics: metrics}, nil
}

// Handler wraps the request in a span and records count, duration and
// in-flight gauges with method/path/status attributes.
func (t *Telemetry) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := t.tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			),
		)
		defer span.End()

		attrs := metric.WithAttributes(
			attribute.String("method", r.Method),
			attribute.String("path", r.URL.Path),
		)
		t.metrics.ActiveRequests.Add(ctx, 1, attrs)
		defer t.metrics.ActiveRequests.Add(ctx, -1, attrs)

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}

		statusAttrs := metric.WithAttributes(
			attribute.String("method", r.Method),
			attribute.String("path", r.URL.Path),
			attribute.Int("status", status),
		)
		t.metrics.RequestsTotal.Add(ctx, 1, statusAttrs)
		t.metrics.RequestDuration.Record(ctx, time.Since(start).Seconds(), statusAttrs)
	})
}
