package server

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	registry *prometheus.Registry
	records  *prometheus.CounterVec
	failures *prometheus.CounterVec
}

func newMetrics(reg *prometheus.Registry) *metrics {
	m := &metrics{
		registry: reg,
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "osrmreader",
			Name:      "records_total",
			Help:      "Records produced per route and outcome.",
		}, []string{"route", "outcome"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "osrmreader",
			Name:      "request_failures_total",
			Help:      "Requests that could not read the graph file.",
		}, []string{"route"}),
	}
	reg.MustRegister(m.records, m.failures)
	return m
}

func (m *metrics) observe(route string, nodes, edges, skipped uint64) {
	m.records.WithLabelValues(route, "nodes").Add(float64(nodes))
	m.records.WithLabelValues(route, "edges").Add(float64(edges))
	m.records.WithLabelValues(route, "skipped").Add(float64(skipped))
}
