package extract

import (
	"fmt"
	"strings"

	"rachunki/internal/domain"
)

// vocabulary holds high-frequency Polish invoice terms. Garbled scans from
// older PDFs produce text with near-zero hits; counting these is cheaper and
// more robust than attempting extraction and failing field by field.
var vocabulary = []string{
	"Faktura", "faktura", "Nabywca", "Sprzedawca", "Termin",
	"płatności", "wody", "ścieków", "Razem", "Brutto", "Netto",
}

// DefaultReadabilityThreshold is the minimum vocabulary hit count for a
// document to be considered usable.
const DefaultReadabilityThreshold = 3

// Gate classifies raw document text as usable or garbled before any field
// extraction is attempted.
type Gate struct {
	threshold int
}

// NewGate creates a readability gate. A threshold below 1 falls back to the
// default.
func NewGate(threshold int) *Gate {
	if threshold < 1 {
		threshold = DefaultReadabilityThreshold
	}
	return &Gate{threshold: threshold}
}

// Check counts distinct vocabulary hits in text. Usable iff the count meets
// the threshold. When it does not, the document must be reported as skipped,
// never as a parse with all fields absent.
func (g *Gate) Check(text string) domain.ReadabilityVerdict {
	hits := 0
	for _, w := range vocabulary {
		if strings.Contains(text, w) {
			hits++
		}
	}
	return domain.ReadabilityVerdict{Usable: hits >= g.threshold, Hits: hits}
}

// Verify returns ErrUnreadable when the text fails the vocabulary check, so
// callers can match the condition with errors.Is.
func (g *Gate) Verify(text string) error {
	if v := g.Check(text); !v.Usable {
		return fmt.Errorf("%d of %d vocabulary hits: %w", v.Hits, g.threshold, domain.ErrUnreadable)
	}
	return nil
}
