package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/go-shipy/internal/config"
	"github.com/MKhiriev/go-shipy/internal/handler"
	"github.com/MKhiriev/go-shipy/internal/logger"
	"github.com/MKhiriev/go-shipy/internal/server"
	"github.com/MKhiriev/go-shipy/internal/service"
	"github.com/MKhiriev/go-shipy/internal/store"
	"github.com/MKhiriev/go-shipy/internal/throttle"
	"github.com/MKhiriev/go-shipy/internal/workers"
	"github.com/MKhiriev/go-shipy/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("shipy-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	loginThrottle, err := throttle.New(ctx, cfg.Throttle, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating login throttle")
	}
	if closer, ok := loginThrottle.(io.Closer); ok {
		defer closer.Close()
	}

	services, err := service.NewServices(storages, loginThrottle, *cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	var wg sync.WaitGroup
	wg.Go(func() {
		workers.NewWorkers(storages.SessionRepository, loginThrottle, cfg.Workers, log).Run(ctx)
	})

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		stop()
		wg.Wait()
		storages.Close()
		os.Exit(1)
	}

	wg.Wait()
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion)
	fmt.Printf("Build date: %s\n", info.BuildDate)
	fmt.Printf("Build commit: %s\n", info.BuildCommit)
}
