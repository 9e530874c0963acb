package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vpapadim/anagnostirio/internal/api"
	"github.com/vpapadim/anagnostirio/internal/auth"
	"github.com/vpapadim/anagnostirio/internal/config"
	"github.com/vpapadim/anagnostirio/internal/drive"
	"github.com/vpapadim/anagnostirio/internal/folders"
	httpserver "github.com/vpapadim/anagnostirio/internal/http"
	"github.com/vpapadim/anagnostirio/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Init(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry, err := folders.Load(cfg.FoldersFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("loading folder registry")
	}

	sessions := auth.NewSessionManager(cfg)
	authService := auth.NewService(cfg, sessions, logger)
	handler := api.NewHandler(cfg, registry, drive.NewClient())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httpserver.NewRouter(cfg, authService, sessions, handler),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("addr", cfg.ListenAddr).
			Int("folders", registry.Len()).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}
