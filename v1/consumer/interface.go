package consumer

import (
	"context"
)

// Message is a single delivery handed to a Handler.
//
// The handler owns the acknowledgement: every message it receives must be
// acked, nacked or rejected exactly once. The consumer never acks on the
// handler's behalf.
type Message interface {
	// AckMsg acknowledges the message as processed.
	AckMsg() error

	// NackMsg negatively acknowledges the message, optionally requeueing it.
	NackMsg(requeue bool) error

	// RejectMsg rejects the message. With requeue false the broker discards
	// it or routes it to the queue's dead-letter exchange.
	RejectMsg(requeue bool) error

	// Body returns the raw payload.
	Body() []byte

	// Header returns the AMQP headers of the message.
	Header() map[string]interface{}

	// Redelivered reports whether the broker has delivered this message before.
	Redelivered() bool

	// DeliveryTag returns the channel-scoped delivery tag.
	DeliveryTag() uint64
}

// Handler processes one delivery. Deliveries for a consumer are handled one
// at a time, in broker order; a handler that blocks stalls signal handling,
// idle checks and reconnects until it returns.
//
// A non-nil error is logged and reported to the observer. It does not ack or
// reject the message and does not stop the consumer, even when it wraps
// ErrPayloadFormat; only payloads the consumer's own filter cannot read are
// rejected and close the consumer.
type Handler func(ctx context.Context, msg Message) error

// QueueRegistration names the queue a consumer binds and the handler that
// receives its deliveries.
type QueueRegistration struct {
	Name    string
	Handler Handler
}

// Logger matches the context-aware methods of the std v1/logger.Logger
// interface.
//
//go:generate mockgen -source=interface.go -destination=mock_logger.go -package=consumer
type Logger interface {
	// DebugWithContext logs a debug message with trace context.
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// InfoWithContext logs an informational message with trace context.
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// WarnWithContext logs a warning message with trace context.
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// ErrorWithContext logs an error message with trace context.
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
