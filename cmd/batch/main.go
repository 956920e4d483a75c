// Command batch runs rule-based extraction over every document in the
// configured source and persists the results.
// Usage: go run ./cmd/batch [-dry-run]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"rachunki/internal/config"
	"rachunki/internal/domain"
	"rachunki/internal/extract"
	"rachunki/internal/port"
	"rachunki/internal/repository/postgres"
	"rachunki/internal/service"
	"rachunki/internal/storage/local"
	"rachunki/internal/storage/s3"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "extract without writing to the database")
	flag.Parse()

	if err := run(*dryRun); err != nil {
		log.Fatal(err)
	}
}

func run(dryRun bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, err := newSource(cfg)
	if err != nil {
		return err
	}

	var store port.RecordStore
	if !dryRun {
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer func() { _ = db.Close() }()
		store = postgres.NewRecordRepo(db)
	}

	processor := service.NewBatchProcessor(
		source,
		store,
		extract.NewGate(cfg.Readability.Threshold),
		extract.NewEngine(),
		service.BatchConfig{Concurrency: cfg.Batch.Concurrency},
	)

	summary, err := processor.Run(ctx)
	if err != nil {
		return err
	}
	for _, o := range summary.Outcomes {
		if o.Status != domain.OutcomeProcessed {
			log.Printf("%s: %s (%s)", o.Document, o.Status, o.Reason)
		}
	}
	return nil
}

func newSource(cfg *config.Config) (port.DocumentSource, error) {
	switch cfg.Source.Backend {
	case "s3":
		return s3.NewSource(&cfg.S3)
	case "local", "":
		return local.NewSource(&cfg.Source), nil
	default:
		return nil, fmt.Errorf("unknown source backend %q", cfg.Source.Backend)
	}
}
