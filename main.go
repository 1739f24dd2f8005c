package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/youpv/whosthatpokemon/internal/catalog"
	"github.com/youpv/whosthatpokemon/internal/config"
	"github.com/youpv/whosthatpokemon/internal/game"
	"github.com/youpv/whosthatpokemon/internal/httpserver"
	"github.com/youpv/whosthatpokemon/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := openDB(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer db.Close()
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	cat := catalog.New(
		catalog.WithBaseURL(cfg.CatalogBaseURL),
		catalog.WithRange(cfg.CatalogMinID, cfg.CatalogMaxID),
		catalog.WithHTTPClient(&http.Client{Timeout: cfg.CatalogTimeout}),
	)
	hub := httpserver.NewHub(cfg.ClientOrigin)
	ctrl := game.NewController(cat, store.NewSQLiteStore(db),
		game.WithRevealDelay(cfg.RevealDelay),
		game.WithNotifier(hub.Publish),
	)
	defer ctrl.Close()

	if err := ctrl.LoadHighScore(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("load high score")
	}
	// First round loads in the background; the page shows "loading" until then.
	go func() { _ = ctrl.NextRound(context.Background()) }()

	srv := httpserver.New(ctrl, hub, cfg.ClientOrigin)
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("starting whosthat server")
	if err := srv.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
}
