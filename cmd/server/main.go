package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/config"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/directory"
	myHTTP "github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/handler/http"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/logger"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/server"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/service"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/store"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("proxinoc-auth-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)

	configStore := directory.NewConfigStore()
	if active, err := storages.DirectoryConfigRepository.GetActive(ctx); err == nil {
		configStore.Load(active)
		log.Info().Str("server_url", active.ServerURL).Msg("loaded active directory configuration")
	} else if !errors.Is(err, store.ErrNoActiveDirectoryConfig) {
		log.Fatal().Err(err).Msg("error loading directory configuration")
	}

	directoryClient := directory.NewClient(cfg.Directory, log)

	services := service.NewServices(storages, directoryClient, configStore, cfg, log)

	handler := myHTTP.NewHandler(services, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workers.NewWorkers(services, configStore, cfg.Workers, log).Run()

	srv.RunServer()
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
