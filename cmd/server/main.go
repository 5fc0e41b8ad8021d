package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sdrdemo/internal/config"
	"sdrdemo/internal/database"
	"sdrdemo/internal/handler"
	"sdrdemo/internal/logger"
	"sdrdemo/internal/repository"
	"sdrdemo/internal/router"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := logger.New(&config.Config{Logging: config.LoggingConfig{Level: "info", Format: "console"}})
		bootLogger.Fatal().Err(err).Msg("could not load config")
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.Database, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	if cfg.Database.Migrate {
		if err := database.Migrate(ctx, db, &log); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	customerRepo := repository.NewCustomerRepository(db)
	handlers := handler.NewHandlers(customerRepo, cfg.Server.BasePath)

	srv := &http.Server{
		Addr: ":" + cfg.Server.Port,
		Handler: router.New(handlers, log, router.Options{
			BasePath:       cfg.Server.BasePath,
			RequestTimeout: cfg.Server.RequestTimeout,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("base_path", cfg.Server.BasePath).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited properly")
}
