// Package otel binds pentaauth engine metrics to an OpenTelemetry Meter.
//
// [NewExporter] registers an Int64ObservableCounter per engine counter and an
// Int64ObservableGauge per latency bucket. A single callback reads
// [pentaauth.Engine.MetricsSnapshot] on each collection cycle. Callers own
// the MeterProvider.
package otel
