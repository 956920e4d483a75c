package port

import (
	"context"

	"github.com/google/uuid"

	"rachunki/internal/domain"
)

// RecordStore persists extraction results.
type RecordStore interface {
	// Save stores a parsed record together with its source document, replacing
	// any earlier result for the same document.
	Save(ctx context.Context, doc domain.SourceDocument, rec *domain.ParsedRecord) (uuid.UUID, error)
	// FindByDocument returns the stored record for a document name, or nil
	// when none exists.
	FindByDocument(ctx context.Context, name string) (*domain.ParsedRecord, error)
}
