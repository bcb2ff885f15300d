package cli

import (
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	// logger prints request details (method, path, status, duration) to stdout
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/trentd187/statteam/internal/assets"
	"github.com/trentd187/statteam/internal/handlers"
	"github.com/trentd187/statteam/internal/log"
	"github.com/trentd187/statteam/internal/match"
	"github.com/trentd187/statteam/internal/metrics"
	"github.com/trentd187/statteam/internal/middleware"
	"github.com/trentd187/statteam/internal/ownership"
	"github.com/trentd187/statteam/internal/roster"
	"github.com/trentd187/statteam/internal/session"
)

const shutdownTimeout = 5 * time.Second

// serveCmd starts the local API.
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Starts the local API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, errSetup := setup(ctx)
			if errSetup != nil {
				return errSetup
			}
			defer app.Close()

			images, errImages := assets.NewLibrary(app.cfg.ImagesDir)
			if errImages != nil {
				return errImages
			}

			server := newServer(handlers.Deps{
				Store:     app.store,
				Auth:      session.NewAuthenticator(app.store),
				Issuer:    session.NewIssuer(app.cfg.SessionSecret),
				Authority: ownership.NewAuthority(app.store),
				Roster:    roster.NewService(app.store, images),
				Recorder:  match.NewRecorder(app.store),
				Metrics:   metrics.NewEngine(app.store),
			})

			go func() {
				<-ctx.Done()

				if errShutdown := server.ShutdownWithTimeout(shutdownTimeout); errShutdown != nil {
					slog.Error("Failed to shut down cleanly", log.ErrAttr(errShutdown))
				}
			}()

			slog.Info("Starting server", slog.String("addr", app.cfg.ListenAddr), slog.String("store", app.store.Location()), slog.String("images", images.Dir()))

			return server.Listen(app.cfg.ListenAddr)
		},
	}
}

// newServer creates the Fiber app with its global middleware and every route.
func newServer(deps handlers.Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "StatTeam",
		DisableStartupMessage: true,
	})

	// --- Global middleware ---
	// These run on every request before any route handler.
	app.Use(recover.New())
	app.Use(logger.New())
	// One request at a time: the store is a single handle with a single writer.
	app.Use(middleware.Serialize())

	handlers.Register(app, deps)

	return app
}
