package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mytheresa/storefront/app/storefront"
	"github.com/mytheresa/storefront/pkg/config"
	"github.com/mytheresa/storefront/pkg/logger"
	"github.com/mytheresa/storefront/pkg/telemetry"
)

const serviceName = "storefront"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(serviceName, cfg, os.Stdout)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Error("telemetry shutdown", slog.Any("err", err))
		}
	}()

	source, err := storefront.NewSource(cfg)
	if err != nil {
		return err
	}

	app, err := storefront.New(source, log)
	if err != nil {
		return err
	}

	log.Info("catalog source", slog.String("source", cfg.CatalogSource))
	if err := app.Run(ctx, cfg.HTTPAddr); err != nil {
		return err
	}
	log.Info("bye")
	return nil
}
