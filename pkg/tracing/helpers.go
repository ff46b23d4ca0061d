package tracing

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opencensus.io/trace"
)

// StartServiceSpan opens a span named "Component.Method" on the given context
func StartServiceSpan(ctx context.Context, component, method string) (context.Context, *trace.Span) {
	return trace.StartSpan(ctx, component+"."+method)
}

func setSpanError(span *trace.Span, err error) {
	span.SetStatus(trace.Status{
		Code:    trace.StatusCodeUnknown,
		Message: err.Error(),
	})
}

// EndSpan records err on the span, if any, and closes it
func EndSpan(span *trace.Span, err error) {
	if err != nil {
		setSpanError(span, err)
	}
	span.End()
}

// TraceMethod runs f inside a span and records its error
func TraceMethod(ctx context.Context, component, method string, f func(context.Context) error) error {
	ctx, span := StartServiceSpan(ctx, component, method)
	defer span.End()

	err := f(ctx)
	if err != nil {
		setSpanError(span, err)
	}
	return err
}

// TraceMethodWithResult runs f inside a span and records its error while
// passing the result through
func TraceMethodWithResult[T any](
	ctx context.Context,
	component, method string,
	f func(context.Context) (T, error),
) (T, error) {
	ctx, span := StartServiceSpan(ctx, component, method)
	defer span.End()

	result, err := f(ctx)
	if err != nil {
		setSpanError(span, err)
	}
	return result, err
}

// AddAttribute attaches a typed attribute to the span in ctx, if one exists
func AddAttribute(ctx context.Context, key string, value interface{}) {
	span := trace.FromContext(ctx)
	if span == nil {
		return
	}

	switch v := value.(type) {
	case string:
		span.AddAttributes(trace.StringAttribute(key, v))
	case int:
		span.AddAttributes(trace.Int64Attribute(key, int64(v)))
	case int32:
		span.AddAttributes(trace.Int64Attribute(key, int64(v)))
	case int64:
		span.AddAttributes(trace.Int64Attribute(key, v))
	case bool:
		span.AddAttributes(trace.BoolAttribute(key, v))
	default:
		span.AddAttributes(trace.StringAttribute(key, fmt.Sprintf("%v", v)))
	}
}

// MarkSpanError flags the span in ctx as failed
func MarkSpanError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if span := trace.FromContext(ctx); span != nil {
		setSpanError(span, err)
	}
}

// WrapHTTPClient returns a copy of client whose transport reports spans for
// outgoing requests. A nil client gets a 30 second timeout.
func WrapHTTPClient(client *http.Client) *http.Client {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	transport := GetHTTPOptions()
	transport.Base = client.Transport

	return &http.Client{
		Transport:     &transport,
		Timeout:       client.Timeout,
		Jar:           client.Jar,
		CheckRedirect: client.CheckRedirect,
	}
}
