// Package prometheus exposes pentaauth engine metrics to Prometheus.
//
// [Exporter] renders the text exposition format directly and serves it via
// Handler. [Collector] plugs the same series into a client_golang registry.
// Counter names are prefixed pentaauth_ and end in _total; the single
// histogram is pentaauth_login_latency_seconds.
package prometheus
