package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Aleph-Alpha/rabbit-consumer/v1/observability"
)

// ObserveOperation records an operation reported by a std client.
//
// Every operation increments operations_total with status "success" or
// "error". Non-zero durations are observed in operation_duration_seconds and
// non-zero sizes are added to payload_bytes_total. A "state_change" operation
// with "from"/"to" metadata moves the connection_state gauge.
func (m *Metrics) ObserveOperation(op observability.OperationContext) {
	status := "success"
	if op.Error != nil {
		status = "error"
	}
	m.operationsTotal.WithLabelValues(op.Component, op.Operation, status).Inc()

	if op.Duration > 0 {
		m.operationDuration.WithLabelValues(op.Component, op.Operation).Observe(op.Duration.Seconds())
	}
	if op.Size > 0 {
		m.payloadBytes.WithLabelValues(op.Component, op.Resource).Add(float64(op.Size))
	}

	if op.Operation == "state_change" {
		if from, ok := op.Metadata["from"].(string); ok && from != "" {
			m.connectionState.WithLabelValues(op.Component, from).Set(0)
		}
		if to, ok := op.Metadata["to"].(string); ok && to != "" {
			m.connectionState.WithLabelValues(op.Component, to).Set(1)
		}
	}
}

// RecordDuration observes the time elapsed since start for an operation.
// Example: defer m.RecordDuration(time.Now(), "cli", "handle")
func (m *Metrics) RecordDuration(start time.Time, component, operation string) {
	m.operationDuration.WithLabelValues(component, operation).Observe(time.Since(start).Seconds())
}

// CreateCounter creates a new CounterVec metric and registers it.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := createCounterVec(m.namespace, name, help, labels)
	m.registerer.MustRegister(counter)
	return counter
}

// CreateHistogram creates a new HistogramVec metric and registers it.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := createHistogramVec(m.namespace, name, help, labels, buckets)
	m.registerer.MustRegister(hist)
	return hist
}

// CreateGauge creates a new GaugeVec metric and registers it.
func (m *Metrics) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := createGaugeVec(m.namespace, name, help, labels)
	m.registerer.MustRegister(gauge)
	return gauge
}

func createCounterVec(namespace, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

func createHistogramVec(namespace, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}

func createGaugeVec(namespace, name, help string, labels []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}
