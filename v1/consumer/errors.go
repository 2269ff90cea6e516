package consumer

import (
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	// ErrInvalidSettings is returned before any network activity when the
	// configuration or the queue registration is incomplete.
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrConnection is returned when the broker cannot be reached.
	ErrConnection = errors.New("connection error")

	// ErrAuthentication is returned when the broker rejects the credentials.
	ErrAuthentication = errors.New("authentication error")

	// ErrPayloadFormat matches every *PayloadFormatError.
	ErrPayloadFormat = errors.New("payload format error")

	// ErrConnectionLost is reported by Err when the broker closes the
	// connection with a reply code other than CONNECTION_FORCED.
	ErrConnectionLost = errors.New("connection lost")

	// ErrQueueBinding is returned when the channel, queue declaration, QoS or
	// subscription cannot be set up.
	ErrQueueBinding = errors.New("queue binding failed")

	// ErrAlreadyStarted is returned by AddQueue and Start once the consumer
	// has been started.
	ErrAlreadyStarted = errors.New("consumer already started")
)

// PayloadFormatError reports a redelivered payload whose age could not be
// determined. Field is the offending JSON field, empty when the body itself
// is not a JSON object.
type PayloadFormatError struct {
	Field string
	Err   error
}

func (e *PayloadFormatError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("payload format error: %v", e.Err)
	}
	return fmt.Sprintf("payload format error: field %q: %v", e.Field, e.Err)
}

func (e *PayloadFormatError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrPayloadFormat) hold for any *PayloadFormatError.
func (e *PayloadFormatError) Is(target error) bool {
	return target == ErrPayloadFormat
}

// classifyDialError maps a dial failure onto ErrAuthentication or
// ErrConnection, keeping the original error in the chain.
func classifyDialError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, amqp.ErrCredentials) || errors.Is(err, amqp.ErrSASL) {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	var amqpErr *amqp.Error
	if errors.As(err, &amqpErr) && amqpErr.Code == amqp.AccessRefused {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	return fmt.Errorf("%w: %w", ErrConnection, err)
}

// IsConnectionForced reports whether err carries the AMQP 320
// CONNECTION_FORCED reply code, the broker's signal that reconnecting is
// expected to succeed.
func IsConnectionForced(err error) bool {
	var amqpErr *amqp.Error
	return errors.As(err, &amqpErr) && amqpErr.Code == amqp.ConnectionForced
}
