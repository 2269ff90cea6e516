package consumer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

var errMissingDate = errors.New("missing")

// unreadablePayload marks a PayloadFormatError raised by the filter itself,
// before any handler saw the message. Only these are settled by the
// consumer; a handler returning a PayloadFormatError is treated like any
// other handler error.
type unreadablePayload struct {
	err error
}

func (e *unreadablePayload) Error() string {
	return e.err.Error()
}

func (e *unreadablePayload) Unwrap() error {
	return e.err
}

// StaleHook is called after the filter rejected a stale redelivery.
type StaleHook func(ctx context.Context, msg Message, age time.Duration)

// MessageFilter vetoes redelivered messages whose payload is older than a
// timeout. It never acks; forwarded messages remain the handler's
// responsibility.
type MessageFilter struct {
	timeout time.Duration
	now     func() time.Time
	onStale StaleHook
}

// FilterOption configures a MessageFilter.
type FilterOption func(*MessageFilter)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) FilterOption {
	return func(f *MessageFilter) {
		f.now = now
	}
}

// WithStaleHook registers fn to be told about every rejected stale message.
func WithStaleHook(fn StaleHook) FilterOption {
	return func(f *MessageFilter) {
		f.onStale = fn
	}
}

// NewMessageFilter creates a filter for the given timeout. A timeout <= 0
// disables the filter.
func NewMessageFilter(timeout time.Duration, opts ...FilterOption) *MessageFilter {
	f := &MessageFilter{
		timeout: timeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Filter wraps next with a MessageFilter for timeout.
func Filter(next Handler, timeout time.Duration) Handler {
	return NewMessageFilter(timeout).Wrap(next)
}

// Wrap returns a Handler that applies the filter before calling next.
//
// A redelivered message is inspected only when a timeout is set. If its
// payload "date" is older than the timeout the message is rejected without
// requeue and next is not called. A payload whose date cannot be read is not
// forwarded either: Wrap returns an error matching ErrPayloadFormat (and
// *PayloadFormatError) and leaves settlement to the caller. The Consumer
// rejects such a message without requeue and then closes.
func (f *MessageFilter) Wrap(next Handler) Handler {
	return func(ctx context.Context, msg Message) error {
		if f.timeout <= 0 || !msg.Redelivered() {
			return next(ctx, msg)
		}

		date, err := parsePayloadDate(msg.Body())
		if err != nil {
			return &unreadablePayload{err: err}
		}

		age := f.now().UTC().Sub(date)
		if age <= f.timeout {
			return next(ctx, msg)
		}

		if err := msg.RejectMsg(false); err != nil {
			return fmt.Errorf("failed to reject stale message: %w", err)
		}
		if f.onStale != nil {
			f.onStale(ctx, msg, age)
		}
		return nil
	}
}

// parsePayloadDate reads the top-level "date" string of a JSON object. Any
// date-time dateparse understands is accepted; values without a zone are
// read as UTC.
func parsePayloadDate(body []byte) (time.Time, error) {
	var payload struct {
		Date json.RawMessage `json:"date"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return time.Time{}, &PayloadFormatError{Err: err}
	}

	raw := bytes.TrimSpace(payload.Date)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, &PayloadFormatError{Field: "date", Err: errMissingDate}
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return time.Time{}, &PayloadFormatError{Field: "date", Err: fmt.Errorf("expected a string: %w", err)}
	}

	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, &PayloadFormatError{Field: "date", Err: fmt.Errorf("unrecognised date-time %q: %w", value, err)}
	}
	return t.UTC(), nil
}
