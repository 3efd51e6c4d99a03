// Package metrics defines the sinks production plans are reported to.
// Sinks like the Prometheus and InfluxDB implementations in infra/metrics
// record computed plans, planner faults and setpoint publications. Several
// sinks are combined with NewMultiSink; NewMetricsSink builds one from
// configuration and returns a MultiSink automatically when more than one sink
// is configured.
package metrics
