package port

import (
	"context"

	"rachunki/internal/domain"
)

// CrossExtractor obtains an independent reading of key invoice fields,
// typically from a language model endpoint.
type CrossExtractor interface {
	Extract(ctx context.Context, text string) (*domain.CrossExtraction, error)
}
