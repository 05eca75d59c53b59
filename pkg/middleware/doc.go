// Package middleware provides net/http middleware for the live preview
// server: Prometheus request metrics, OpenTelemetry request spans and
// structured request logging.
//
// Each middleware has the func(http.Handler) http.Handler shape, so it
// plugs into chi directly:
//
//	r := chi.NewRouter()
//	r.Use(middleware.Logger(logger))
//	r.Use(middleware.OpenTelemetry(middleware.WithTracerName("marks-live")))
//	r.Use(middleware.Prometheus(middleware.WithRegistry(reg)))
//
// Routes are labelled by their chi pattern ("/seek/{frame}"), not the raw
// path, so label cardinality stays bounded.
package middleware
