package tracing

import (
	"database/sql"
	"fmt"
	"net/http"

	"contrib.go.opencensus.io/integrations/ocsql"
	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/trace"

	"github.com/archetype-studio/archetype/config"
)

// InitTracing initializes OpenCensus tracing with the given configuration
// codecov:ignore:start
func InitTracing(tracingConfig *config.TracingConfig) error {
	if !tracingConfig.Enabled {
		return nil
	}

	// Configure trace sampling rate
	trace.ApplyConfig(trace.Config{
		DefaultSampler: trace.ProbabilitySampler(tracingConfig.SamplingProbability),
	})

	// Register default views for HTTP metrics
	if err := view.Register(ochttp.DefaultServerViews...); err != nil {
		return fmt.Errorf("failed to register HTTP server views: %w", err)
	}

	// Register database views (from ocsql)
	if err := view.Register(ocsql.DefaultViews...); err != nil {
		return fmt.Errorf("failed to register database views: %w", err)
	}

	return nil
}

// RegisterTracedPostgresDriver registers a postgres driver wrapped with ocsql
// instrumentation and returns its name for sql.Open.
func RegisterTracedPostgresDriver() (string, error) {
	driverName, err := ocsql.Register("postgres",
		ocsql.WithAllTraceOptions(),
		ocsql.WithInstanceName("archetype"),
	)
	if err != nil {
		return "", fmt.Errorf("failed to register traced postgres driver: %w", err)
	}
	return driverName, nil
}

// OpenTracedDB opens a database handle through the instrumented driver
func OpenTracedDB(dsn string) (*sql.DB, error) {
	driverName, err := RegisterTracedPostgresDriver()
	if err != nil {
		return nil, err
	}
	return sql.Open(driverName, dsn)
}

// GetHTTPOptions returns options for HTTP client tracing
func GetHTTPOptions() ochttp.Transport {
	return ochttp.Transport{
		Base: nil,
		FormatSpanName: func(req *http.Request) string {
			return fmt.Sprintf("%s %s", req.Method, req.URL.Path)
		},
		StartOptions: trace.StartOptions{
			Sampler: trace.AlwaysSample(),
		},
	}
}

// RegisterHTTPServerViews registers views for HTTP server metrics
func RegisterHTTPServerViews() error {
	return view.Register(
		ochttp.ServerRequestCountView,
		ochttp.ServerRequestBytesView,
		ochttp.ServerResponseBytesView,
		ochttp.ServerLatencyView,
		ochttp.ServerRequestCountByMethod,
		ochttp.ServerResponseCountByStatusCode,
	)
}

// codecov:ignore:end
