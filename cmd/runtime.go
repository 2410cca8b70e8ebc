package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"card-ledger/core/config"
	"card-ledger/core/logger"
	"card-ledger/core/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// bootstrap loads configuration and builds the logger tagged with a run id.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(l)
	return cfg, l.With(zap.String("run_id", uuid.NewString())), nil
}

// signalContext is cancelled on interrupt or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// serveMetrics exposes the registry on addr until the returned stop is called.
// An empty addr disables it.
func serveMetrics(addr string, m *metrics.Metrics, l *zap.Logger) (stop func()) {
	if addr == "" {
		return func() {}
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	go func() {
		l.Info("Serving metrics", zap.String("addr", addr))
		if err := app.Listen(addr); err != nil {
			l.Warn("Metrics server stopped", zap.Error(err))
		}
	}()
	return func() { _ = app.Shutdown() }
}
