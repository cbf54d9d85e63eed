package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/racfadmin/internal/client/cli"
	"github.com/dmitrijs2005/racfadmin/internal/client/client"
	"github.com/dmitrijs2005/racfadmin/internal/client/config"
	"github.com/dmitrijs2005/racfadmin/internal/client/export"
	"github.com/dmitrijs2005/racfadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/racfadmin/internal/client/repositories/users"
	"github.com/dmitrijs2005/racfadmin/internal/client/services"
	"github.com/dmitrijs2005/racfadmin/internal/logging"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}

func run() error {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger := logging.NewTextLogger(os.Stderr, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	userRepo := users.NewSQLiteRepository(db)
	seeder := services.NewSeeder(userRepo, metadata.NewSQLiteRepository(db), logger)

	remote := client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout, logger)
	prober := services.NewHealthProber(remote, cfg.ProbeTimeout)
	svc := services.NewUserService(prober, services.NewRemoteBackend(remote), services.NewLocalBackend(userRepo, seeder), logger)

	var exporter cli.Exporter
	if cfg.S3.Bucket != "" {
		s3c, err := export.NewS3Client(ctx, cfg.S3)
		if err != nil {
			logger.Warn(ctx, "export disabled", "error", err)
		} else {
			exporter = export.NewExporter(svc, s3c, cfg.S3.Bucket, cfg.S3.Prefix)
		}
	}

	cli.NewApp(svc, prober, exporter, os.Stdin, os.Stdout, logger).Run(ctx, cfg.StatusInterval)
	return nil
}
