package main

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/Aleph-Alpha/rabbit-consumer/v1/config"
	"github.com/Aleph-Alpha/rabbit-consumer/v1/consumer"
	"github.com/Aleph-Alpha/rabbit-consumer/v1/logger"
	"github.com/Aleph-Alpha/rabbit-consumer/v1/metrics"
	"github.com/Aleph-Alpha/rabbit-consumer/v1/tracer"
)

// appOptions wires the logger, metrics, tracer and consumer modules for cfg.
func appOptions(cfg *config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg.Logger, cfg.Metrics, cfg.Tracer, cfg.Consumer),
		fx.WithLogger(func(l *logger.LoggerClient) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Zap}
		}),

		logger.FXModule,
		metrics.FXModule,
		tracer.FXModule,
		consumer.FXModule,

		fx.Provide(
			fx.Annotate(
				func(l *logger.LoggerClient) consumer.Logger { return l },
				fx.As(new(consumer.Logger)),
			),
			func(l *logger.LoggerClient) consumer.QueueRegistration {
				return consumer.QueueRegistration{
					Name:    cfg.Queue,
					Handler: logAndAck(l),
				}
			},
		),
	)
}

// logAndAck logs every delivery and acknowledges it.
func logAndAck(log logger.Logger) consumer.Handler {
	return func(ctx context.Context, msg consumer.Message) error {
		log.InfoWithContext(ctx, "Message received", nil, map[string]interface{}{
			"delivery_tag": msg.DeliveryTag(),
			"redelivered":  msg.Redelivered(),
			"size":         len(msg.Body()),
		})
		return msg.AckMsg()
	}
}
