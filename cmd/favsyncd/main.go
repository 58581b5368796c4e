package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/fav-sync/internal/config"
	"github.com/MKhiriev/fav-sync/internal/handler"
	"github.com/MKhiriev/fav-sync/internal/logger"
	"github.com/MKhiriev/fav-sync/internal/messaging"
	"github.com/MKhiriev/fav-sync/internal/server"
	"github.com/MKhiriev/fav-sync/internal/service"
	"github.com/MKhiriev/fav-sync/internal/store"
	"github.com/MKhiriev/fav-sync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("favsyncd")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if buildVersion != "N/A" {
		cfg.App.Version = buildVersion
	}
	cfg.App.BuildDate, cfg.App.BuildCommit = buildDate, buildCommit
	logger.SetLevel(cfg.App.LogLevel)

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	hub := messaging.NewHub(log)

	services, err := service.NewServices(storages, hub, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}
	defer services.Detach()

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	background := []workers.Worker{storages.Local, services.DrainJob}
	if storages.SyncListener != nil {
		background = append(background, storages.SyncListener)
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(log, background...), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
