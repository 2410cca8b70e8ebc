package cmd

import (
	"fmt"
	"time"

	"card-ledger/core/config"
	"card-ledger/core/loader"
	"card-ledger/core/logger"
	"card-ledger/core/middleware/auth"
	"card-ledger/core/middleware/rayid"
	"card-ledger/core/storage"
	"card-ledger/feature/export"
	"card-ledger/feature/inventory"
	"card-ledger/feature/snapshot"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "card-ledger/docs/swagger"
)

// @title Card Ledger API
// @version 1.0
// @description Crawled card catalogue, shop prices and ledger portfolio.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the latest crawl outputs over HTTP",
	Long: `Starts the HTTP server exposing the cards and prices CSV outputs as JSON,
the ledger portfolio when LEDGER_URL and LEDGER_API_KEY are set, and the
archived runs when storage is enabled. API docs are served at /swagger/.`,
	RunE: runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logg, err := bootstrap()
	if err != nil {
		return err
	}
	defer logg.Sync()

	app, err := newServerApp(cfg, logg)
	if err != nil {
		return err
	}
	return listen(app, cfg, logg)
}

// newServerApp builds the fiber app with middleware and every feature loaded.
func newServerApp(cfg *config.Config, logg *zap.Logger) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID first so every later log line carries it
	app.Use(rayid.New())
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		start := time.Now()
		err := c.Next()
		l.Info("Request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("took", time.Since(start)),
		)
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	// Health and docs stay public
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{"/health"}}))

	var portfolio snapshot.PortfolioReader
	if cfg.Ledger.Validate() == nil {
		timeout := time.Duration(cfg.Ledger.TimeoutSeconds) * time.Second
		portfolio = inventory.NewRESTLedger(cfg.Ledger.URL, cfg.Ledger.APIKey, cfg.Sync.StagingTable, timeout)
	}

	var runs snapshot.RunLister
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		runs = export.NewUploader(client, cfg.Storage, logg)
	}

	feature, err := snapshot.NewFeature(cfg.Crawler.OutputDir, cfg.Server.CacheSize, portfolio, runs, logg)
	if err != nil {
		return nil, err
	}
	mgr := loader.NewManager(logg)
	mgr.Register(feature)
	if err := mgr.LoadAll(app); err != nil {
		return nil, fmt.Errorf("failed to load features: %w", err)
	}
	return app, nil
}

// listen runs the server until interrupt or SIGTERM, then shuts down.
func listen(app *fiber.App, cfg *config.Config, logg *zap.Logger) error {
	ctx, cancel := signalContext()
	defer cancel()

	errc := make(chan error, 1)
	go func() {
		logg.Info("Starting server", zap.String("addr", cfg.Server.Addr()))
		errc <- app.Listen(cfg.Server.Addr())
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logg.Info("Shutting down server...")
	return app.ShutdownWithTimeout(10 * time.Second)
}
