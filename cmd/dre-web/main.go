package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"drecli/internal/app"
	"drecli/internal/config"
	"drecli/internal/infrastructure"
	"drecli/pkg/contracts"
)

func main() {
	configFile := flag.String("config", "", "config file (defaults to dre.yaml or configs/dre.yaml when present)")
	version := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *version {
		fmt.Println(contracts.Build())
		return
	}

	application, err := newApplication(context.Background(), *configFile)
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newApplication uses the configuration lookup of app.NewApplication unless
// an explicit file is given.
func newApplication(ctx context.Context, configFile string) (*app.Application, error) {
	if configFile == "" {
		return app.NewApplication(ctx)
	}

	cfg, err := config.LoadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return app.New(ctx, cfg, logger)
}
