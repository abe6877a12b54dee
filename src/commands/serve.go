package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bankweb/src/api"
	"bankweb/src/config"
	"bankweb/src/db"
	"bankweb/src/events"
	"bankweb/src/middleware"
	"bankweb/src/views"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand() *cobra.Command {
	var runMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()
			return runServe(cmd.Context(), cfg, runMigrations, logger)
		},
	}

	cmd.Flags().BoolVar(&runMigrations, "migrate", false, "apply database migrations before serving")

	return cmd
}

func newPublisher(cfg config.Config, logger *zap.Logger) events.Publisher {
	logger = logger.With(zap.String("component", "events"))
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("KAFKA_BROKER_URL not set, transfer events go to the log")
		return events.NewLogPublisher(logger)
	}
	return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTransferTopic, logger)
}

func runServe(ctx context.Context, cfg config.Config, runMigrations bool, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if runMigrations && cfg.DatabaseURL != "" {
		if err := db.Migrate(cfg.DatabaseURL, db.MigrateUp); err != nil {
			return err
		}
		logger.Info("Database migrations applied")
	}

	st, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	publisher := newPublisher(cfg, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Error closing transfer publisher", zap.Error(err))
		}
	}()

	renderer, err := views.NewRenderer()
	if err != nil {
		return err
	}

	sessions := middleware.NewSessions(cfg.JWTSecret, cfg.SessionTTL)
	sessions.Secure = cfg.SecureCookies()

	router := api.NewRouter(api.Deps{
		Store:          st,
		Sessions:       sessions,
		Renderer:       renderer,
		Publisher:      publisher,
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
		DemoMode:       cfg.DemoMode,
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server",
			zap.String("address", httpServer.Addr),
			zap.Bool("demo_mode", cfg.DemoMode))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
