package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"parking_lot/internal/api"
	"parking_lot/internal/config"
	"parking_lot/internal/repository"
	"parking_lot/internal/repository/postgresql"
	"parking_lot/internal/service"
)

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Info().Msg("configuration loaded")

	db, err := postgresql.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to database")
	}
	defer db.Close()
	log.Info().Str("host", cfg.DBHost).Str("dbname", cfg.DBName).Msg("connected to database")

	ctx := context.Background()
	if err := postgresql.InitSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("cannot initialize schema")
	}

	store := postgresql.NewStore(db)
	if err := repository.SeedSpots(ctx, store, cfg.Layout); err != nil {
		log.Fatal().Err(err).Msg("cannot seed parking spots")
	}

	feePolicy := service.NewFeePolicy(cfg.HourlyRates)
	parkingService := service.NewParkingService(store, feePolicy)

	router := api.SetupRouter(parkingService)
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.ServerPort).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shut down")
	}
	log.Info().Msg("server stopped")
}
