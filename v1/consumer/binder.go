package consumer

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// binding is one live subscription: the channel, its delivery stream and
// the filtered handler that receives it.
type binding struct {
	channel    Channel
	deliveries <-chan amqp.Delivery
	handler    Handler
	tag        string
}

// release closes the channel, which also cancels the subscription.
func (b *binding) release() error {
	if b == nil || b.channel == nil {
		return nil
	}
	return b.channel.Close()
}

func (c *Consumer) queueArgs() amqp.Table {
	if c.cfg.DeadLetterExchange == "" {
		return nil
	}
	return amqp.Table{"x-dead-letter-exchange": c.cfg.DeadLetterExchange}
}

// build opens a fresh channel on conn, declares the queue, arms the idle
// timer and subscribes the filtered handler with manual acknowledgement.
// It is safe to call again after a reconnect; each call yields a new
// binding and the caller releases the previous one first.
func (c *Consumer) build(ctx context.Context, conn Connection) (*binding, error) {
	queue := c.queue.Name

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open channel: %w", ErrQueueBinding, err)
	}

	fail := func(step string, err error) (*binding, error) {
		_ = ch.Close()
		return nil, fmt.Errorf("%w: %s %q: %w", ErrQueueBinding, step, queue, err)
	}

	if _, err := ch.QueueDeclare(
		queue,
		c.cfg.durable(), // Durable
		false,           // AutoDelete
		false,           // Exclusive
		false,           // NoWait
		c.queueArgs(),
	); err != nil {
		return fail("failed to declare queue", err)
	}

	if c.cfg.PrefetchCount > 0 {
		if err := ch.Qos(c.cfg.PrefetchCount, 0, false); err != nil {
			return fail("failed to set QoS on", err)
		}
	}

	c.termination.armIdle()

	tag := c.newTag()
	deliveries, err := ch.Consume(
		queue,
		tag,
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,   // args
	)
	if err != nil {
		c.termination.disarmIdle()
		return fail("failed to consume from", err)
	}

	c.logInfo(ctx, "Subscribed to queue", map[string]interface{}{
		"queue":        queue,
		"consumer_tag": tag,
		"durable":      c.cfg.durable(),
	})

	return &binding{
		channel:    ch,
		deliveries: deliveries,
		handler:    c.filter.Wrap(c.queue.Handler),
		tag:        tag,
	}, nil
}
