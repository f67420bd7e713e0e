// Package internaldefs holds the metric names and bucket bounds shared by the
// Prometheus and OTel exporters, so both publish identical series.
//
// This package must not perform I/O.
package internaldefs
