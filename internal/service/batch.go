package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"rachunki/internal/domain"
	"rachunki/internal/extract"
	"rachunki/internal/port"
)

// BatchConfig holds settings for a batch extraction run.
type BatchConfig struct {
	Concurrency int
}

// BatchProcessor runs rule-based extraction over every document a source
// lists, persisting results as it goes. One bad document never aborts the
// run; its outcome is recorded and the batch continues.
type BatchProcessor struct {
	source port.DocumentSource
	store  port.RecordStore
	gate   *extract.Gate
	engine *extract.Engine
	cfg    BatchConfig
}

// NewBatchProcessor creates a new BatchProcessor. A nil store disables
// persistence, useful for dry runs.
func NewBatchProcessor(source port.DocumentSource, store port.RecordStore, gate *extract.Gate, engine *extract.Engine, cfg BatchConfig) *BatchProcessor {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &BatchProcessor{
		source: source,
		store:  store,
		gate:   gate,
		engine: engine,
		cfg:    cfg,
	}
}

// Run processes all listed documents and returns the aggregated summary.
func (p *BatchProcessor) Run(ctx context.Context) (*domain.BatchSummary, error) {
	docs, err := p.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	log.Printf("batchProcessor: starting (documents=%d, concurrency=%d)", len(docs), p.cfg.Concurrency)

	sem := make(chan struct{}, p.cfg.Concurrency)
	outcomes := make([]domain.DocumentOutcome, len(docs))

	var wg sync.WaitGroup
	for i := range docs {
		if ctx.Err() != nil {
			break
		}
		doc := docs[i]
		idx := i

		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			outcomes[idx] = p.processOne(ctx, doc)
		}()
	}
	wg.Wait()

	summary := &domain.BatchSummary{}
	for _, o := range outcomes {
		if o.Document == "" {
			// Listed but never dispatched; the run was canceled.
			continue
		}
		summary.Add(o)
	}
	log.Printf("batchProcessor: done (processed=%d, skipped=%d, failed=%d)",
		summary.Processed, summary.Skipped, summary.Failed)
	return summary, ctx.Err()
}

func (p *BatchProcessor) processOne(ctx context.Context, doc domain.SourceDocument) domain.DocumentOutcome {
	outcome := domain.DocumentOutcome{Document: doc.Name, Provider: doc.Provider}

	text, err := p.source.Text(ctx, doc)
	if err != nil {
		log.Printf("batchProcessor: %s: text unavailable: %v", doc.Name, err)
		outcome.Status = domain.OutcomeFailed
		outcome.Reason = fmt.Sprintf("text unavailable: %v", err)
		return outcome
	}

	if err := p.gate.Verify(text); err != nil {
		log.Printf("batchProcessor: %s: %v", doc.Name, err)
		outcome.Status = domain.OutcomeSkipped
		outcome.Reason = err.Error()
		return outcome
	}

	rec, err := p.engine.Extract(doc.Provider, text)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			outcome.Status = domain.OutcomeSkipped
		} else {
			outcome.Status = domain.OutcomeFailed
		}
		log.Printf("batchProcessor: %s: extraction failed: %v", doc.Name, err)
		outcome.Reason = err.Error()
		return outcome
	}

	if p.store != nil {
		if _, err := p.store.Save(ctx, doc, rec); err != nil {
			log.Printf("batchProcessor: %s: save failed: %v", doc.Name, err)
			outcome.Status = domain.OutcomeFailed
			outcome.Reason = fmt.Sprintf("save failed: %v", err)
			return outcome
		}
	}

	if len(rec.Unmatched) > 0 {
		log.Printf("batchProcessor: %s: fields without a match: %v", doc.Name, rec.Unmatched)
	}
	outcome.Status = domain.OutcomeProcessed
	return outcome
}
