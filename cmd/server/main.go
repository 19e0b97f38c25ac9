package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kaukau001/url-shortener-api/internal/auth"
	"github.com/kaukau001/url-shortener-api/internal/config"
	"github.com/kaukau001/url-shortener-api/internal/database"
	"github.com/kaukau001/url-shortener-api/internal/handlers"
	"github.com/kaukau001/url-shortener-api/internal/logger"
	"github.com/kaukau001/url-shortener-api/internal/repository"
	"github.com/kaukau001/url-shortener-api/internal/services"
	"github.com/kaukau001/url-shortener-api/internal/workers"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := database.Connect(cfg.DatabaseDSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	timeouts := repository.Timeouts{
		Create: cfg.CreateTimeout,
		Update: cfg.UpdateTimeout,
		Find:   cfg.FindTimeout,
	}
	linkRepo := repository.NewLinkRepository(db, timeouts)
	userRepo := repository.NewUserRepository(db, timeouts)

	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		log.Fatal().Err(err).Msg("token issuer setup failed")
	}

	clickQueue := workers.NewClickQueue(linkRepo, log, cfg.ClickQueueSize, cfg.ClickTimeout)
	clickQueue.Start(cfg.ClickWorkers)

	codeGen := services.NewCodeGenerator(linkRepo, log)
	linkService := services.NewLinkService(linkRepo, codeGen, clickQueue, cfg.BaseURL, log)
	userService := services.NewUserService(userRepo, tokens, log)

	router := handlers.NewRouter(log, linkService, userService, tokens)

	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("address", cfg.ServerAddress).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	clickQueue.Stop()
	log.Info().Msg("stopped")
}
