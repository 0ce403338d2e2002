package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"delivery-reconciler/core/loader"
	"delivery-reconciler/core/logger"
	"delivery-reconciler/core/middleware/auth"
	"delivery-reconciler/core/middleware/rayid"
	"delivery-reconciler/feature/cacheadmin"
	"delivery-reconciler/feature/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "delivery-reconciler/docs/swagger"
)

// @title Delivery Reconciler API
// @version 1.0
// @description API for reconciling store deliveries against external supplier ledgers.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the reconciliation server",
	Long:  `Starts the HTTP server, the cache sweeper and all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := newRuntime()
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		logg := rt.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Background sweeper keeps expired entries from piling up in the
		// persistent store.
		sweepCtx, stopSweeper := context.WithCancel(context.Background())
		defer stopSweeper()
		go rt.cache.RunSweeper(sweepCtx, rt.cfg.Cache.SweepInterval)

		mgr := loader.NewManager()
		mgr.Register(reconcile.NewFeature(rt.service))
		mgr.Register(cacheadmin.NewFeature(rt.cache, logg))

		// RayID must be first so every log line of a request carries it.
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

		// Swagger stays public; everything after this is key-protected.
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
			if err := app.Listen(":" + rt.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		stopSweeper()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
