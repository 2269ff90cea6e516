package consumer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ConsumerMessage implements Message on top of an amqp.Delivery.
type ConsumerMessage struct {
	delivery amqp.Delivery
}

// NewConsumerMessage wraps d.
func NewConsumerMessage(d amqp.Delivery) *ConsumerMessage {
	return &ConsumerMessage{delivery: d}
}

func (m *ConsumerMessage) AckMsg() error {
	return m.delivery.Ack(false)
}

func (m *ConsumerMessage) NackMsg(requeue bool) error {
	return m.delivery.Nack(false, requeue)
}

func (m *ConsumerMessage) RejectMsg(requeue bool) error {
	return m.delivery.Reject(requeue)
}

func (m *ConsumerMessage) Body() []byte {
	return m.delivery.Body
}

func (m *ConsumerMessage) Header() map[string]interface{} {
	return m.delivery.Headers
}

func (m *ConsumerMessage) Redelivered() bool {
	return m.delivery.Redelivered
}

func (m *ConsumerMessage) DeliveryTag() uint64 {
	return m.delivery.DeliveryTag
}

// headerCarrier converts AMQP headers into a propagation carrier. Only
// string and byte values can carry trace context.
func headerCarrier(headers amqp.Table) map[string]string {
	carrier := make(map[string]string, len(headers))
	for k, v := range headers {
		switch val := v.(type) {
		case string:
			carrier[k] = val
		case []byte:
			carrier[k] = string(val)
		}
	}
	return carrier
}

func (c *Consumer) logDebug(ctx context.Context, msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.DebugWithContext(ctx, msg, nil, fields)
	}
}

func (c *Consumer) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}

func (c *Consumer) logWarn(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.WarnWithContext(ctx, msg, err, fields)
	}
}

// logError is used for failures that happen on the event loop and cannot be
// returned to a caller.
func (c *Consumer) logError(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.ErrorWithContext(ctx, msg, err, fields)
	}
}

func (c *Consumer) newConsumerTag() string {
	return fmt.Sprintf("%s-%s", c.cfg.ConsumerTagPrefix, uuid.NewString())
}
