package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rachunki/internal/domain"
)

func f(v float64) *float64 { return &v }
func s(v string) *string   { return &v }

func TestCompareNumericWithinTolerance(t *testing.T) {
	d := CompareNumeric("amount_to_pay", f(100.0), f(100.9), 1.0)
	assert.Nil(t, d)
}

func TestCompareNumericExceedsTolerance(t *testing.T) {
	d := CompareNumeric("amount_to_pay", f(100.0), f(100.9), 0.5)
	require.NotNil(t, d)
	assert.Equal(t, "amount_to_pay", d.Field)
	assert.Equal(t, "100.00", d.RuleValue)
	assert.Equal(t, "100.90", d.AIValue)
	assert.InDelta(t, 0.9, d.Delta, 1e-9)
	assert.True(t, d.ExceededTolerance)
}

func TestCompareNumericBothAbsent(t *testing.T) {
	assert.Nil(t, CompareNumeric("amount_to_pay", nil, nil, 1.0))
}

func TestCompareNumericRuleMissedField(t *testing.T) {
	d := CompareNumeric("consumption_kwh", nil, f(450.0), 5.0)
	require.NotNil(t, d)
	assert.Equal(t, "missing", d.RuleValue)
	assert.Equal(t, "450.00", d.AIValue)
	assert.False(t, d.ExceededTolerance)
}

func TestCompareNumericAIAbsent(t *testing.T) {
	assert.Nil(t, CompareNumeric("amount_to_pay", f(100.0), nil, 1.0))
}

func TestCompareText(t *testing.T) {
	assert.Nil(t, CompareText("location", s(" Płatnicza 65 "), s("płatnicza 65")))

	d := CompareText("location", s("Płatnicza 65"), s("Rydygiera 8"))
	require.NotNil(t, d)
	assert.True(t, d.ExceededTolerance)

	assert.Nil(t, CompareText("location", s("Płatnicza 65"), nil))
	assert.NotNil(t, CompareText("location", nil, s("Płatnicza 65")))
}

func TestReconcilerCompareOrderIsStable(t *testing.T) {
	r := NewReconciler(1.0, 5.0)
	doc := domain.SourceDocument{Name: "faktura.pdf", Provider: domain.ProviderPGNiG}
	rec := &domain.ParsedRecord{
		AmountToPay:      f(120.0),
		CostGross:        f(123.0),
		ConsumptionKWh:   f(1120.0),
		ConsumptionValue: f(100.0),
		ConsumptionUnit:  s("m3"),
	}
	cross := &domain.CrossExtraction{
		AmountToPay:    f(150.0),
		CostGrossTotal: f(123.5),
		ConsumptionKWh: f(1200.0),
		ConsumptionM3:  f(100.0),
	}

	report := r.Compare(doc, rec, cross)
	assert.Equal(t, "faktura.pdf", report.Document)
	assert.False(t, report.Clean())
	require.Len(t, report.Discrepancies, 2)
	assert.Equal(t, "amount_to_pay", report.Discrepancies[0].Field)
	assert.Equal(t, "consumption_kwh", report.Discrepancies[1].Field)
}

func TestReconcilerCleanReport(t *testing.T) {
	r := NewReconciler(1.0, 5.0)
	doc := domain.SourceDocument{Name: "faktura.pdf", Provider: domain.ProviderEON}
	rec := &domain.ParsedRecord{AmountToPay: f(456.78), CostGross: f(456.78)}
	cross := &domain.CrossExtraction{AmountToPay: f(456.78)}

	report := r.Compare(doc, rec, cross)
	assert.True(t, report.Clean())
}
