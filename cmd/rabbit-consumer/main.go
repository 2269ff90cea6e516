package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/rabbit-consumer/v1/config"
)

var (
	version   = "dev"
	gitCommit = "unknown"
)

const stopTimeout = 30 * time.Second

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		queue      string
	)

	cmd := &cobra.Command{
		Use:   "rabbit-consumer",
		Short: "Consume a single RabbitMQ queue",
		Long: `rabbit-consumer binds one RabbitMQ queue and supervises the connection.
It reconnects when the broker forces the connection closed, drops stale
redeliveries, and exits on SIGINT/SIGTERM or once the queue runs empty.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, gitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if queue != "" {
				cfg.Queue = queue
			}
			if err := run(cmd.Context(), cfg); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "rabbit-consumer:", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the YAML configuration file")
	cmd.Flags().StringVarP(&queue, "queue", "q", "", "Queue to consume, overrides the configuration")

	return cmd
}

// run starts the application and blocks until it is shut down, either by a
// signal or because the consumer stopped. A non-zero exit code becomes an
// error.
func run(ctx context.Context, cfg *config.Config) error {
	app := fx.New(appOptions(cfg))

	startCtx, cancel := context.WithTimeout(ctx, stopTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	sig := <-app.Wait()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), stopTimeout)
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		return fmt.Errorf("failed to stop: %w", err)
	}

	if sig.ExitCode != 0 {
		return fmt.Errorf("consumer stopped with exit code %d", sig.ExitCode)
	}
	return nil
}
