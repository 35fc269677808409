// Package infra holds the adapters around the simulation core: zerolog
// loggers, Prometheus and InfluxDB metric sinks, the MQTT telemetry
// publisher and Sentry monitoring. They depend on core interfaces only.
package infra
