package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os/signal"
	"syscall"

	"sensor-telemetry/internal/api"
	"sensor-telemetry/internal/config"
	"sensor-telemetry/pkg/telemetrydb"
)

func main() {
	var configPath string
	var envFile string
	flag.StringVar(&configPath, "config", "", "Path to YAML configuration file (optional)")
	flag.StringVar(&envFile, "env-file", ".env", "Path to .env file (optional)")
	flag.Parse()

	if err := run(configPath, envFile); err != nil {
		log.Fatal(err)
	}
}

func run(configPath, envFile string) error {
	if err := config.LoadDotEnv(envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env file: %w", err)
		}
		log.Printf("no %s file found, using environment variables", envFile)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client, err := telemetrydb.Open(telemetrydb.Options{
		Dialect:         cfg.Database.Dialect,
		DSN:             cfg.Database.ConnString(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer client.Close()

	srv, err := api.NewServer(
		api.WithStore(client),
		api.WithAddr(cfg.Server.ListenAddress),
		api.WithMode(cfg.Server.Mode),
		api.WithTimeouts(cfg.Server.RequestTimeout, cfg.Server.ShutdownTimeout),
	)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		return err
	}
	log.Println("server shutdown complete")
	return nil
}
