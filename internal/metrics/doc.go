// Package metrics records migration counters and timings.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	migrator, err := migrate.New(cfg, migrate.WithRecorder(recorder))
//
// PrometheusRecorder registers its collectors on a caller supplied registry.
// A one-shot CLI run has nothing to scrape it, so the registry is written
// once with WriteTextfile for the node_exporter textfile collector.
package metrics
