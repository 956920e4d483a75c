package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"rachunki/internal/domain"
	"rachunki/internal/extract"
	"rachunki/internal/port"
	"rachunki/internal/reconcile"
)

// AuditConfig holds settings for a reconciliation run.
type AuditConfig struct {
	// Force re-checks documents whose clean result is already cached.
	Force bool
	// RateDelay is the pause between AI endpoint calls.
	RateDelay time.Duration
	// ReportPath receives the JSON summary; empty disables the file.
	ReportPath string
}

// Auditor reconciles rule-based extraction against an independent AI reading
// of each document. Documents run sequentially: the AI endpoint is the
// bottleneck and is rate-limited cooperatively.
type Auditor struct {
	source     port.DocumentSource
	gate       *extract.Gate
	engine     *extract.Engine
	cross      port.CrossExtractor
	reconciler *reconcile.Reconciler
	cache      *reconcile.ValidationCache
	cfg        AuditConfig
}

// NewAuditor creates a new Auditor.
func NewAuditor(
	source port.DocumentSource,
	gate *extract.Gate,
	engine *extract.Engine,
	cross port.CrossExtractor,
	reconciler *reconcile.Reconciler,
	cache *reconcile.ValidationCache,
	cfg AuditConfig,
) *Auditor {
	return &Auditor{
		source:     source,
		gate:       gate,
		engine:     engine,
		cross:      cross,
		reconciler: reconciler,
		cache:      cache,
		cfg:        cfg,
	}
}

// Run reconciles every listed document and returns the summary. Clean results
// are cached so later runs skip unchanged documents.
func (a *Auditor) Run(ctx context.Context) (*domain.AuditSummary, error) {
	docs, err := a.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	log.Printf("auditor: starting (documents=%d, force=%v)", len(docs), a.cfg.Force)

	summary := &domain.AuditSummary{}
	first := true
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if !a.cfg.Force && a.cache.IsClean(doc) {
			summary.Cached++
			continue
		}

		text, err := a.source.Text(ctx, doc)
		if err != nil {
			log.Printf("auditor: %s: text unavailable: %v", doc.Name, err)
			summary.Skipped++
			continue
		}
		if err := a.gate.Verify(text); err != nil {
			log.Printf("auditor: %s: %v", doc.Name, err)
			summary.Skipped++
			continue
		}

		rec, err := a.engine.Extract(doc.Provider, text)
		if err != nil {
			log.Printf("auditor: %s: extraction failed: %v", doc.Name, err)
			summary.Skipped++
			continue
		}

		if !first && a.cfg.RateDelay > 0 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			case <-time.After(a.cfg.RateDelay):
			}
		}
		first = false

		cross, err := a.cross.Extract(ctx, text)
		if err != nil {
			log.Printf("auditor: %s: cross-extraction failed: %v", doc.Name, err)
			summary.Skipped++
			continue
		}

		report := a.reconciler.Compare(doc, rec, cross)
		summary.Checked++
		if report.Clean() {
			summary.OK++
			if err := a.cache.MarkClean(doc); err != nil {
				log.Printf("auditor: %s: cache write failed: %v", doc.Name, err)
			}
			continue
		}

		summary.Issues++
		summary.Reports = append(summary.Reports, *report)
		for _, d := range report.Discrepancies {
			log.Printf("auditor: %s: %s rule=%s ai=%s delta=%.2f",
				doc.Name, d.Field, d.RuleValue, d.AIValue, d.Delta)
		}
	}

	log.Printf("auditor: done (checked=%d, ok=%d, issues=%d, skipped=%d, cached=%d)",
		summary.Checked, summary.OK, summary.Issues, summary.Skipped, summary.Cached)

	if a.cfg.ReportPath != "" {
		if err := writeReport(a.cfg.ReportPath, summary); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

func writeReport(path string, summary *domain.AuditSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
