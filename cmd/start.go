package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"destination-sync/core/config"
	"destination-sync/core/loader"
	"destination-sync/core/logger"
	"destination-sync/core/metrics"
	"destination-sync/core/middleware/auth"
	"destination-sync/core/middleware/rayid"
	"destination-sync/core/reconcile"
	"destination-sync/core/transport"

	"destination-sync/feature/blackbaud"
	"destination-sync/feature/hubspot"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "destination-sync/docs/swagger"
)

// @title Destination Sync API
// @version 1.0
// @description Reconciles destination schemas and records, then delivers events and records.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the destination sync server",
	Long:  `Starts the HTTP server and initializes all enabled destinations.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Shared collaborators
		m := metrics.New()
		cache := reconcile.NewSchemaCache(cfg.Cache, m, logg)
		client := transport.NewClient(cfg.Transport)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           cfg.Server.ReadTimeout(),
		})

		// 4. Register Features
		mgr := loader.NewManager()
		mgr.Register(hubspot.NewFeature(cfg.HubSpot, client, cache, m, logg))
		mgr.Register(blackbaud.NewFeature(cfg.Blackbaud, client, m, logg))

		// RayID first so every log line carries it
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Public routes
		app.Get("/metrics", m.Handler())
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 5. Load Features
		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("addr", cfg.Server.Addr()))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
