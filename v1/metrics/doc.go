// Package metrics exposes Prometheus metrics for consumer services.
//
// *Metrics owns a dedicated registry wrapped with a constant "service" label
// and an HTTP server serving /metrics. It implements observability.Observer,
// so it can be handed directly to a consumer:
//
//	m := metrics.NewMetrics(metrics.Config{Address: ":9090", ServiceName: "ingest"})
//	go m.Server.ListenAndServe()
//
//	c, err := consumer.NewConsumer(cfg, consumer.WithObserver(m))
//
// Registered metrics (prefixed with Config.Namespace when set):
//
//	operations_total{component, operation, status}
//	operation_duration_seconds{component, operation}
//	payload_bytes_total{component, resource}
//	connection_state{component, state}
//
// Additional application metrics can be added with CreateCounter,
// CreateHistogram and CreateGauge.
//
// # FX Module Integration
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    fx.Supply(metrics.Config{Address: ":9090"}),
//	)
//
// The module provides *Metrics, MetricsCollector and observability.Observer.
package metrics
