package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/securecheck/backend/internal/api"
	"github.com/securecheck/backend/internal/metrics"
	"github.com/securecheck/backend/internal/middleware/ratelimit"
	appLogger "github.com/securecheck/backend/pkg/logger"
)

func serveCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := env.cfg
			appLogger.Info("Starting SecureCheck API server")

			metrics.Init()

			limiter := ratelimit.New(ratelimit.Config{
				MaxRequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
				Logger:               appLogger.Log,
			})
			defer limiter.Stop()

			app := api.NewApp(cfg, env.engine, limiter)

			addr := cfg.Server.Address()
			appLogger.Info("Server starting", zap.String("address", addr))

			errCh := make(chan error, 1)
			go func() {
				errCh <- app.Listen(addr)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				appLogger.Error("Server failed", zap.Error(err))
				return err
			case <-quit:
			}

			appLogger.Info("Server shutting down gracefully...")
			if err := app.Shutdown(); err != nil {
				appLogger.Error("Server shutdown failed", zap.Error(err))
				return err
			}
			appLogger.Info("Server stopped")
			return nil
		},
	}
}
