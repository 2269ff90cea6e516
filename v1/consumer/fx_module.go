package consumer

import (
	"context"
	"sync/atomic"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/rabbit-consumer/v1/observability"
	"github.com/Aleph-Alpha/rabbit-consumer/v1/tracer"
)

// FXModule provides a *Consumer and ties it to the application lifecycle.
//
// The consumer starts with the application. When it stops on its own (signal,
// idle queue or fatal error) the application is shut down too, with exit
// code 1 if the consumer stopped with an error.
//
// Usage:
//
//	app := fx.New(
//	    consumer.FXModule,
//	    fx.Supply(cfg),
//	    fx.Supply(consumer.QueueRegistration{Name: "ingest", Handler: handle}),
//	)
//
// Dependencies required by this module:
//   - a consumer.Config
//   - a consumer.QueueRegistration (optional here, but Start fails without it)
//   - a consumer.Dialer, consumer.Logger, observability.Observer and
//     *tracer.Tracer (optional)
var FXModule = fx.Module("consumer",
	fx.Provide(
		NewConsumerWithDI,
	),
	fx.Invoke(RegisterConsumerLifecycle),
)

// ConsumerParams groups the dependencies needed to create a Consumer.
type ConsumerParams struct {
	fx.In

	Config   Config
	Queue    QueueRegistration      `optional:"true"`
	Dialer   Dialer                 `optional:"true"`
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
	Tracer   *tracer.Tracer         `optional:"true"`
}

// NewConsumerWithDI creates a Consumer from injected dependencies.
func NewConsumerWithDI(params ConsumerParams) (*Consumer, error) {
	var opts []Option
	if params.Dialer != nil {
		opts = append(opts, WithDialer(params.Dialer))
	}
	if params.Logger != nil {
		opts = append(opts, WithLogger(params.Logger))
	}
	if params.Observer != nil {
		opts = append(opts, WithObserver(params.Observer))
	}
	if params.Tracer != nil {
		opts = append(opts, WithTracer(params.Tracer))
	}

	c, err := NewConsumer(params.Config, opts...)
	if err != nil {
		return nil, err
	}

	if params.Queue.Name != "" {
		if err := c.AddQueue(params.Queue.Name, params.Queue.Handler); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ConsumerLifecycleParams groups the dependencies for lifecycle registration.
type ConsumerLifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Consumer   *Consumer
}

// RegisterConsumerLifecycle starts the consumer on application start and
// shuts it down gracefully on stop.
func RegisterConsumerLifecycle(params ConsumerLifecycleParams) {
	var stopping atomic.Bool
	c := params.Consumer

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := c.Start(ctx); err != nil {
				return err
			}

			go func() {
				<-c.Done()
				if stopping.Load() {
					return
				}
				code := 0
				if c.Err() != nil {
					code = 1
				}
				_ = params.Shutdowner.Shutdown(fx.ExitCode(code))
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopping.Store(true)
			return c.Shutdown(ctx)
		},
	})
}
