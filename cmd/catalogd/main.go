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
	zlog "github.com/rs/zerolog/log"

	"github.com/phenrril/productcatalog/internal/app"
)

func main() {
	_ = godotenv.Load()
	cfg := app.LoadConfig()

	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.IsDev() {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := app.OpenDB(cfg)
	if err != nil {
		zlog.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to connect to database")
	}

	application, err := app.NewApp(db)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to create app")
	}
	if err := application.Migrate(); err != nil {
		zlog.Fatal().Err(err).Msg("failed to migrate database")
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           application.HTTPHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(ctx)
	zlog.Info().Msg("bye")
}
