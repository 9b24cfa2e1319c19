// Package server exposes archived analysis runs over HTTP.
//
// Read-only surface: run listings, the latest run, rendered chart PNGs,
// health probes and Prometheus metrics. Writes happen only through the
// analyze command.
package server
