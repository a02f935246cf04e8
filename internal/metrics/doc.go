// Package metrics provides build and composition metrics for docsite.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	gen := hugo.NewGenerator(cfg, out, hugo.WithRecorder(metrics.NoopRecorder{}))
//
// To collect metrics, pass a PrometheusRecorder instead. The CLI writes its
// values to a textfile after a build (--metrics-file) and the preview server
// exposes them at /metrics.
package metrics
