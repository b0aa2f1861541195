package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vfg2006/sales-pipeline/internal/api"
	"github.com/vfg2006/sales-pipeline/internal/app"
	"github.com/vfg2006/sales-pipeline/internal/config"
	"github.com/vfg2006/sales-pipeline/internal/scheduler"
	"github.com/vfg2006/sales-pipeline/internal/usecases/authenticating"
	"github.com/vfg2006/sales-pipeline/pkg/log"
)

func main() {
	cfg, err := config.NewConfig(nil)
	if err != nil {
		log.L.Fatal(err)
	}

	closer, err := log.Setup(cfg.App.LogLevel, cfg.App.LogFile)
	if err != nil {
		log.L.Fatal(err)
	}
	defer closer.Close()

	if err := cfg.ValidateServer(); err != nil {
		log.L.WithError(err).Fatal("Invalid configuration")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components := app.Build(cfg)
	authenticator := authenticating.NewService(cfg.Auth)

	pipelineSyncService := scheduler.NewPipelineSyncService(components.Pipeline, cfg)
	if err := pipelineSyncService.Start(ctx); err != nil {
		log.L.WithError(err).Error("Error starting the pipeline scheduler")
	}

	server, err := api.New(
		cfg,
		components.Pipeline,
		components.Reports,
		components.Forecaster,
		authenticator,
		pipelineSyncService,
	)
	if err != nil {
		log.L.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		log.L.Error(err)
	}
}
