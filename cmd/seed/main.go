package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"myflix-api/internal/app"
	"myflix-api/internal/config"
	"myflix-api/internal/seed"
	"myflix-api/internal/storage"
)

func main() {
	flags := pflag.NewFlagSet("myflix-seed", pflag.ExitOnError)
	flags.String("seed.source", "", "catalog file path, s3://bucket/key or s3://bucket/prefix/")
	flags.String("store.driver", "", "store backend: mongo or sqlite")
	flags.String("seed.endpoint", "", "custom S3 endpoint")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := app.NewLogger(cfg)
	if err != nil {
		log.Fatalf("setup logger: %v", err)
	}

	source := cfg.Seed.Source
	if source == "" && flags.NArg() > 0 {
		source = flags.Arg(0)
	}
	if source == "" {
		logger.Fatalf("seed source is required (--seed.source or MYFLIX_SEED_SOURCE)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer store.Close(context.Background())

	var objects storage.Service
	if storage.IsRemote(source) {
		objects, err = app.NewObjectStorage(ctx, cfg, logger)
		if err != nil {
			logger.Fatalf("setup storage: %v", err)
		}
	}

	result, err := seed.NewSeeder(store.Movies, objects, logger).Run(ctx, source)
	if err != nil {
		_ = store.Close(context.Background())
		logger.Fatalf("seed %s: %v", source, err)
	}
	logger.Infof("seeded %d file(s): %d movies created, %d updated", result.Files, result.Created, result.Updated)
}
