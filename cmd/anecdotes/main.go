package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fullstack/internal/logger"
	"fullstack/internal/server"
	db "fullstack/repository/db"
	inmemory "fullstack/repository/inmemory"
)

func main() {
	log := logger.NewConsole()
	log.Info().Msg("anecdote service starting")

	cfg := server.ReadConfig()

	var repo server.AnecdoteRepository
	if err := db.Migration(cfg.DBStr, cfg.MigratePath); err != nil {
		log.Warn().Err(err).Msg("migrations failed, falling back to in-memory storage")
	}
	dbStorage, err := db.NewStorage(cfg.DBStr, log)
	if err != nil {
		log.Warn().Err(err).Msg("database unavailable, using in-memory storage")
		repo = inmemory.NewStorage()
	} else {
		repo = dbStorage
	}

	api := server.NewAnecdoteAPI(repo, cfg, log)
	if api == nil {
		log.Fatal().Msg("failed to initialize API")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Int("port", cfg.Port).Msg("listening")
		if err := api.Start(); err != nil {
			serverErr <- err
		}
	}()

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := api.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	case err := <-serverErr:
		log.Error().Err(err).Msg("server error")
	}

	log.Info().Msg("anecdote service stopped")
}
