// Command audit reconciles stored rule-based extraction against an
// independent AI reading of each document and reports discrepancies.
// Usage: go run ./cmd/audit [-force]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"rachunki/internal/ai"
	"rachunki/internal/config"
	"rachunki/internal/extract"
	"rachunki/internal/port"
	"rachunki/internal/reconcile"
	"rachunki/internal/service"
	"rachunki/internal/storage/local"
	"rachunki/internal/storage/s3"
)

func main() {
	force := flag.Bool("force", false, "re-check documents with cached clean results")
	flag.Parse()

	if err := run(*force); err != nil {
		log.Fatal(err)
	}
}

func run(force bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Credential problems surface here, before any document is touched.
	extractor, err := ai.NewExtractor(&cfg.AI)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, err := newSource(cfg)
	if err != nil {
		return err
	}

	auditor := service.NewAuditor(
		source,
		extract.NewGate(cfg.Readability.Threshold),
		extract.NewEngine(),
		extractor,
		reconcile.NewReconciler(cfg.Audit.CostTolerance, cfg.Audit.ConsumptionTolerance),
		reconcile.LoadCache(cfg.Audit.CachePath),
		service.AuditConfig{
			Force:      force || cfg.Audit.Force,
			RateDelay:  cfg.AI.RateDelay(),
			ReportPath: cfg.Audit.ReportPath,
		},
	)

	summary, err := auditor.Run(ctx)
	if err != nil {
		return err
	}
	if summary.Issues > 0 {
		log.Printf("audit found %d documents with discrepancies, see %s", summary.Issues, cfg.Audit.ReportPath)
		os.Exit(1)
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
