package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("league-importer/internal/interfaces/httpapi")

// startSpan opens spans for handlers only. Middleware and response helpers
// stay inside the otelhttp server span, and filtered routes such as /healthz
// carry no parent at all.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() || !shouldCreateHTTPAPISpan(name) {
		return ctx, parent
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}

// pathAttrs exposes the matched route and the named path values of r.
func pathAttrs(r *http.Request, names ...string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(names)+1)
	if r.Pattern != "" {
		attrs = append(attrs, attribute.String("http.route", r.Pattern))
	}
	for _, name := range names {
		if value := r.PathValue(name); value != "" {
			attrs = append(attrs, attribute.String("path."+name, value))
		}
	}
	return attrs
}
