// Package tracer wires OpenTelemetry tracing for consumer services.
//
// NewClient builds an sdk TracerProvider, optionally exporting over OTLP/HTTP,
// and registers it globally with W3C trace-context propagation. The consumer
// uses SetCarrierOnContext to continue traces published by producers that
// called GetCarrier and copied the carrier into the message headers.
//
//	t, err := tracer.NewClient(tracer.Config{ServiceName: "ingest"})
//	if err != nil {
//	    return err
//	}
//	defer t.Shutdown(context.Background())
//
//	ctx, span := t.StartSpan(ctx, "process")
//	defer span.End()
package tracer
