// Package observability defines the hook through which std clients report the
// operations they perform. Implementations typically translate each operation
// into metrics (see the metrics package) or trace events.
package observability

import "time"

// OperationContext describes a single operation performed by a client.
type OperationContext struct {
	// Component is the client that performed the operation, e.g. "rabbit_consumer".
	Component string

	// Operation is the kind of operation, e.g. "consume" or "reconnect".
	Operation string

	// Resource is the primary resource the operation touched, usually a queue name.
	Resource string

	// SubResource is an optional secondary resource, such as a consumer tag.
	SubResource string

	// Duration is how long the operation took. Zero for instantaneous events.
	Duration time.Duration

	// Error is the error the operation ended with, or nil on success.
	Error error

	// Size is the payload size in bytes, when meaningful.
	Size int64

	// Metadata carries operation specific values, e.g. the from/to states of a
	// state change.
	Metadata map[string]interface{}
}

// Observer receives notifications about client operations.
// Implementations must be safe for concurrent use and must not block.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}
