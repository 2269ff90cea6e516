package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and HTTP server responsible
// for exposing application metrics.
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	Registry *prometheus.Registry

	namespace  string
	registerer prometheus.Registerer

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	payloadBytes      *prometheus.CounterVec
	connectionState   *prometheus.GaugeVec
}

// NewMetrics initializes a dedicated registry, registers the operation metrics
// fed by ObserveOperation and creates the HTTP server exposing /metrics.
//
// All metrics carry the constant label service="<cfg.ServiceName>".
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:                 ":9090",
//	    ServiceName:             "ingest-consumer",
//	    EnableDefaultCollectors: true,
//	})
//	go m.Server.ListenAndServe()
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry:   registry,
		namespace:  cfg.Namespace,
		registerer: wrappedRegistry,
	}

	m.operationsTotal = createCounterVec(m.namespace, "operations_total",
		"Total number of client operations by outcome", []string{"component", "operation", "status"})
	m.operationDuration = createHistogramVec(m.namespace, "operation_duration_seconds",
		"Duration of client operations in seconds", []string{"component", "operation"}, prometheus.DefBuckets)
	m.payloadBytes = createCounterVec(m.namespace, "payload_bytes_total",
		"Total payload bytes processed per resource", []string{"component", "resource"})
	m.connectionState = createGaugeVec(m.namespace, "connection_state",
		"Current connection state; 1 for the active state, 0 otherwise", []string{"component", "state"})

	wrappedRegistry.MustRegister(
		m.operationsTotal,
		m.operationDuration,
		m.payloadBytes,
		m.connectionState,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	address := cfg.Address
	if address == "" {
		address = DefaultMetricsAddress
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	m.Server = &http.Server{
		Addr:    address,
		Handler: mux,
	}
	return m
}
