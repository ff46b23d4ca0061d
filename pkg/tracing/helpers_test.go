package tracing

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/trace"
)

func TestStartServiceSpan(t *testing.T) {
	ctx, span := StartServiceSpan(context.Background(), "ClientService", "CreateClient")
	require.NotNil(t, span)
	defer span.End()

	assert.Equal(t, span, trace.FromContext(ctx))
}

func TestTraceMethod(t *testing.T) {
	t.Run("returns nil on success", func(t *testing.T) {
		err := TraceMethod(context.Background(), "Svc", "Method", func(ctx context.Context) error {
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("propagates error", func(t *testing.T) {
		wantErr := errors.New("boom")
		err := TraceMethod(context.Background(), "Svc", "Method", func(ctx context.Context) error {
			return wantErr
		})
		assert.Equal(t, wantErr, err)
	})
}

func TestTraceMethodWithResult(t *testing.T) {
	got, err := TraceMethodWithResult(context.Background(), "Svc", "Method", func(ctx context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	_, err = TraceMethodWithResult(context.Background(), "Svc", "Method", func(ctx context.Context) (int, error) {
		return 0, errors.New("boom")
	})
	assert.Error(t, err)
}

func TestAddAttributeWithoutSpan(t *testing.T) {
	// No span in context must not panic
	AddAttribute(context.Background(), "key", "value")
	AddAttribute(context.Background(), "key", 7)
	AddAttribute(context.Background(), "key", true)
}

func TestMarkSpanError(t *testing.T) {
	MarkSpanError(context.Background(), nil)
	MarkSpanError(context.Background(), errors.New("boom"))

	ctx, span := StartServiceSpan(context.Background(), "Svc", "Method")
	defer span.End()
	MarkSpanError(ctx, errors.New("boom"))
}

func TestWrapHTTPClient(t *testing.T) {
	t.Run("nil client gets defaults", func(t *testing.T) {
		client := WrapHTTPClient(nil)
		require.NotNil(t, client)
		assert.Equal(t, 30*time.Second, client.Timeout)
		assert.NotNil(t, client.Transport)
	})

	t.Run("existing client keeps timeout", func(t *testing.T) {
		client := WrapHTTPClient(&http.Client{Timeout: 5 * time.Second})
		assert.Equal(t, 5*time.Second, client.Timeout)
	})
}
