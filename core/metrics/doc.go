// Package metrics defines the observability sinks fed by the simulation.
// A MetricsSink records accepted bookings; optional recorder interfaces
// cover rejections, completed trips, car moves and per-tick fleet
// snapshots, detected by type assertion. Implementations such as the
// Prometheus and InfluxDB sinks live in infra/metrics and are created from
// configuration through NewMetricsSink, which returns a MultiSink when
// several sinks are configured.
package metrics
