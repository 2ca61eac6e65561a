package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solarac_dashboard/internal/config"
	"solarac_dashboard/internal/handlers"
	"solarac_dashboard/internal/logger"
	"solarac_dashboard/internal/repository"
	"solarac_dashboard/internal/repository/db"
	"solarac_dashboard/internal/repository/gcp"
	"solarac_dashboard/internal/server"
	"solarac_dashboard/internal/service"
)

const configDir = "configs"

func main() {
	cfg, err := config.Load(configDir)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level)

	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid config", "err", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// open DB
	sqlDB, err := db.InitDB(ctx, cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err, "path", cfg.DB.Path)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	remote, err := openGoogle(ctx, cfg)
	if err != nil {
		log.Fatalw("failed to init google clients", "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(sqlDB, remote, repository.SheetRef{
		SpreadsheetID: cfg.Google.SpreadsheetID,
		SheetName:     cfg.Google.SheetName,
	})
	services := service.NewService(repos, service.Options{
		Sources: service.Sources{
			RawFileID:    cfg.Google.RawFileID,
			LatestFileID: cfg.Google.LatestFileID,
		},
		Auth: service.AuthConfig{
			SigningKey: cfg.Auth.SigningKey,
			TokenTTL:   cfg.Auth.TokenTTL,
		},
	}, log)
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := server.New(server.Options{
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	})
	runHTTPServer(srv, cfg.Port, apiHandler, log)
	log.Infow("dashboard started", "port", cfg.Port, "db", cfg.DB.Path)

	// graceful shutdown
	waitForShutdown(cancel, srv, cfg.HTTP.ShutdownTimeout, log)
}

// openGoogle builds the Drive and Sheets clients from the configured service account.
func openGoogle(ctx context.Context, cfg *config.Config) (*gcp.Clients, error) {
	creds, err := cfg.Credentials()
	if err != nil {
		return nil, err
	}
	opt, err := gcp.WithServiceAccount(creds)
	if err != nil {
		return nil, err
	}
	return gcp.NewClients(ctx, opt)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, timeout time.Duration, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	cancel()

	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
