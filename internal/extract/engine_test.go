package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rachunki/internal/domain"
)

// syntheticEngine registers a throwaway provider so rule mechanics can be
// tested without depending on any real invoice layout.
func syntheticEngine(rules []Rule) *Engine {
	e := NewEngine()
	e.RegisterClassifier("synthetic", func(string) domain.DocumentType {
		return domain.DocTypeSettlement
	})
	e.RegisterProfile(&Profile{
		Provider: "synthetic",
		DocType:  domain.DocTypeSettlement,
		Rules:    rules,
	})
	return e
}

func TestEngineFirstMatchWins(t *testing.T) {
	rules := []Rule{
		{
			Field:   "doc_number",
			Pattern: re(`Invoice no\.\s+(\S+)`),
			Apply:   setString(func(r *domain.ParsedRecord, v string) { r.DocNumber = &v }),
		},
		{
			// Later variant matching the same text must not run.
			Field:   "doc_number",
			Pattern: re(`no\.\s+(\S+)`),
			Apply:   setString(func(r *domain.ParsedRecord, v string) { v = "variant-" + v; r.DocNumber = &v }),
		},
	}
	e := syntheticEngine(rules)

	rec, err := e.Extract("synthetic", "Invoice no. 42/2024")
	require.NoError(t, err)
	require.NotNil(t, rec.DocNumber)
	assert.Equal(t, "42/2024", *rec.DocNumber)
}

func TestEngineChainFallsThrough(t *testing.T) {
	rules := []Rule{
		{
			Field:   "doc_number",
			Pattern: re(`Invoice no\.\s+(\S+)`),
			Apply:   setString(func(r *domain.ParsedRecord, v string) { r.DocNumber = &v }),
		},
		{
			Field:   "doc_number",
			Pattern: re(`Document\s+(\S+)`),
			Apply:   setString(func(r *domain.ParsedRecord, v string) { r.DocNumber = &v }),
		},
	}
	e := syntheticEngine(rules)

	rec, err := e.Extract("synthetic", "Document 7/2023")
	require.NoError(t, err)
	require.NotNil(t, rec.DocNumber)
	assert.Equal(t, "7/2023", *rec.DocNumber)
	assert.Empty(t, rec.Unmatched)
}

func TestEngineMalformedTokenSettlesFieldAbsent(t *testing.T) {
	rules := []Rule{
		{
			Field:   "amount_to_pay",
			Pattern: re(`Due:\s+(\S+)`),
			Apply:   setNumber(func(r *domain.ParsedRecord, v float64) { r.AmountToPay = &v }),
		},
		{
			// Must not be attempted: the token was present but malformed.
			Field:   "amount_to_pay",
			Pattern: re(`Amount\s+(\d+)`),
			Apply:   setNumber(func(r *domain.ParsedRecord, v float64) { r.AmountToPay = &v }),
		},
	}
	e := syntheticEngine(rules)

	rec, err := e.Extract("synthetic", "Due: garbage\nAmount 100")
	require.NoError(t, err)
	assert.Nil(t, rec.AmountToPay)
	assert.Contains(t, rec.Unmatched, "amount_to_pay")
}

func TestEngineSectionScopesPattern(t *testing.T) {
	rules := []Rule{
		{
			Field:   "totals",
			Section: re(`(?s)Section B.*`),
			Pattern: re(`Razem\s+([\d,]+)\s+([\d,]+)\s+([\d,]+)`),
			Apply:   setTotals(),
		},
	}
	e := syntheticEngine(rules)

	text := "Section A\nRazem 1,00 2,00 3,00\nSection B\nRazem 10,00 20,00 30,00\n"
	rec, err := e.Extract("synthetic", text)
	require.NoError(t, err)
	require.NotNil(t, rec.CostNet)
	assert.Equal(t, 10.0, *rec.CostNet)
	assert.Equal(t, 30.0, *rec.CostGross)
}

func TestEngineAllRuleCollectsEveryMatch(t *testing.T) {
	rules := []Rule{
		{
			Field:   "amount_to_pay",
			All:     true,
			Pattern: re(`Do zapłaty:\s+([\d,]+)\s+zł`),
			Apply:   setMaxAmount(func(r *domain.ParsedRecord, v float64) { r.AmountToPay = &v }),
		},
	}
	e := syntheticEngine(rules)

	text := "Do zapłaty: 120,00 zł\nDo zapłaty: 45,00 zł\nDo zapłaty: 120,00 zł\n"
	rec, err := e.Extract("synthetic", text)
	require.NoError(t, err)
	require.NotNil(t, rec.AmountToPay)
	assert.Equal(t, 120.00, *rec.AmountToPay)
}

func TestEngineUnmatchedFieldsListed(t *testing.T) {
	rules := []Rule{
		{
			Field:   "doc_number",
			Pattern: re(`Invoice no\.\s+(\S+)`),
			Apply:   setString(func(r *domain.ParsedRecord, v string) { r.DocNumber = &v }),
		},
		{
			Field:   "due_date",
			Pattern: re(`Due by\s+(\d{2}\.\d{2}\.\d{4})`),
			Apply:   setDate(func(r *domain.ParsedRecord, v string) { r.DueDate = &v }),
		},
	}
	e := syntheticEngine(rules)

	rec, err := e.Extract("synthetic", "Invoice no. 9/2024")
	require.NoError(t, err)
	assert.Equal(t, []string{"due_date"}, rec.Unmatched)
}

func TestEngineUnknownProfile(t *testing.T) {
	e := NewEngine()
	_, err := e.Extract("nosuch", "Faktura")
	assert.True(t, errors.Is(err, domain.ErrProfileNotFound))
}
