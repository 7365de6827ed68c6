// Package instrumentation provides OpenTelemetry instrumentation for the
// nylas-go demo server.
//
// This package enables production-grade observability through:
//   - OpenTelemetry metrics for HTTP requests, auth exchanges, and Nylas API calls
//   - Prometheus metrics export via /metrics endpoint on a dedicated port
//
// # Metrics
//
// The package exposes the following metric categories:
//
// Server/HTTP Metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//
// Nylas API Metrics:
//   - nylas_api_operations_total: Counter of API operations by resource, operation, status
//   - nylas_api_operation_duration_seconds: Histogram of API operation durations
//
// Auth Metrics:
//   - oauth_code_exchanges_total: Counter of authorization code exchanges by result
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, stdout, default: prometheus)
//   - OTEL_SERVICE_NAME: Service name (default: nylas-go)
//   - METRICS_DETAILED_LABELS: Include high-cardinality labels (default: false)
//
// # Example Usage
//
//	// Initialize instrumentation
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
//		ServiceName:    "nylas-go",
//		ServiceVersion: "0.1.0",
//		Enabled:        true,
//	})
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	// Get metrics recorder
//	recorder := provider.Metrics()
//
//	// Record an HTTP request
//	recorder.RecordHTTPRequest(ctx, "GET", "/nylas/messages", 200, time.Since(start))
//
//	// Record a Nylas API operation
//	recorder.RecordAPIOperation(ctx, "messages", "all", "success", time.Since(start))
package instrumentation
