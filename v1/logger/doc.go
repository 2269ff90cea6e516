// Package logger provides structured logging built on Uber's zap.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - Logger interface: Defines the contract for logging operations
//   - LoggerClient struct: Concrete implementation of the Logger interface
//   - NewLoggerClient constructor: Returns *LoggerClient (concrete type)
//   - FX module: Provides both *LoggerClient and Logger interface for dependency injection
//
// # Direct Usage (Without FX)
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         "info",
//		ServiceName:   "ingest-consumer",
//		EnableTracing: true,
//	})
//
//	log.Info("consumer started", nil, map[string]interface{}{
//		"queue": "ingest",
//	})
//
//	// Includes trace_id and span_id of the span in ctx
//	log.InfoWithContext(ctx, "message handled", nil, nil)
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(func() logger.Config {
//			return logger.Config{Level: "info", ServiceName: "ingest-consumer"}
//		}),
//	)
//
// # Configuration
//
//	ZAP_LOGGER_LEVEL=debug          # debug, info, warning, error
//	LOGGER_SERVICE_NAME=ingest      # value of the "service" field
//	LOGGER_ENABLE_TRACING=true      # add trace_id/span_id to *WithContext entries
//
// # Thread Safety
//
// All methods are safe for concurrent use by multiple goroutines.
package logger
