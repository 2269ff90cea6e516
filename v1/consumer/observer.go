package consumer

import (
	"time"

	"github.com/Aleph-Alpha/rabbit-consumer/v1/observability"
)

const component = "consumer"

// observeOperation notifies the observer about an operation if one is configured.
func (c *Consumer) observeOperation(operation string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveOperation(observability.OperationContext{
		Component: component,
		Operation: operation,
		Resource:  c.queueName(),
		Duration:  duration,
		Error:     err,
		Size:      size,
		Metadata:  metadata,
	})
}

// observeDelivery reports a per-message operation with the consumer tag of
// the live binding as SubResource. It runs on the event loop only.
func (c *Consumer) observeDelivery(operation string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if c.observer == nil {
		return
	}
	var tag string
	if c.binding != nil {
		tag = c.binding.tag
	}
	c.observer.ObserveOperation(observability.OperationContext{
		Component:   component,
		Operation:   operation,
		Resource:    c.queueName(),
		SubResource: tag,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    metadata,
	})
}

func (c *Consumer) queueName() string {
	if c.queue == nil {
		return ""
	}
	return c.queue.Name
}
