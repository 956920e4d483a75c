package port

import (
	"context"

	"rachunki/internal/domain"
)

// DocumentSource enumerates invoice documents and supplies their extracted
// text. Implementations exist for a local directory tree and for S3.
type DocumentSource interface {
	// List returns all documents grouped under provider folders.
	List(ctx context.Context) ([]domain.SourceDocument, error)
	// Text returns the extracted text for a document.
	Text(ctx context.Context, doc domain.SourceDocument) (string, error)
}
