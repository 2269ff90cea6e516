package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/rabbit-consumer/v1/logger"
)

// FXModule provides *Tracer from a tracer.Config and flushes it on stop.
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClient,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// TracerLifecycleParams groups the dependencies of RegisterTracerLifecycle.
type TracerLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Tracer    *Tracer
	Logger    logger.Logger `optional:"true"`
}

// RegisterTracerLifecycle shuts the provider down when the application stops.
func RegisterTracerLifecycle(p TracerLifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if p.Logger != nil {
				p.Logger.Info("shutting down tracer", nil, nil)
			}
			return p.Tracer.Shutdown(ctx)
		},
	})
}
