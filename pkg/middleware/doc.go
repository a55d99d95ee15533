// Package middleware provides the HTTP middleware the blog server runs
// every request through.
//
// This package includes:
//   - Prometheus metrics middleware and the theme resolution counter
//   - OpenTelemetry tracing middleware
//   - Structured request logging with log/slog
//
// # Prometheus Metrics
//
//	m := middleware.NewMetrics(middleware.WithNamespace("blog"))
//	r.Use(m.Handler)
//	layout.New(layout.WithObserver(m.ObserveTheme))
//
// Metrics collected:
//   - blog_http_requests_total{route,method,status}
//   - blog_http_request_duration_seconds{route}
//   - blog_theme_resolutions_total{theme,source}
//
// The route label is the chi route pattern ("/*", "/healthz"), never the
// raw path, so cardinality stays bounded.
//
// # OpenTelemetry
//
//	r.Use(middleware.OpenTelemetry(middleware.WithTracerName("blog")))
//
// Each request gets a server span from the global tracer provider. The
// span is stored in the request context, so handlers further down add
// attributes with trace.SpanFromContext.
package middleware
