package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rachunki/internal/domain"
)

const pgnigText = `Faktura VAT nr P/12345/2024/03 z dnia 10.03.2024
PGNiG Obrót Detaliczny
Adres punktu poboru: Numer Klienta: 123456 ul. Płatnicza 65
nr gazomierza: G998877
Wartość do zapłaty: 120,00 zł
Rozliczenie za paliwo gazowe w okresie rozliczeniowym od 01.01.2024 do 29.02.2024
Razem zużycie 100 [m3] 1120 [kWh]
1500 R 1600 R 100 m³
Sprzedaż ogółem 100,00 23,00 123,00
Do zapłaty: 45,00 zł
Termin płatności: 24.03.2024
Do zapłaty: 120,00 zł
Dziękujemy
`

func TestPGNiGExtraction(t *testing.T) {
	e := NewEngine()
	rec, err := e.Extract(domain.ProviderPGNiG, pgnigText)
	require.NoError(t, err)

	assert.Equal(t, domain.DocTypeSettlement, rec.DocType)
	assert.Equal(t, domain.UtilityGas, rec.UtilityType)

	require.NotNil(t, rec.DocNumber)
	assert.Equal(t, "P/12345/2024/03", *rec.DocNumber)
	require.NotNil(t, rec.IssueDate)
	assert.Equal(t, "2024-03-10", *rec.IssueDate)
	require.NotNil(t, rec.Location)
	assert.Equal(t, "Płatnicza 65", *rec.Location)
	require.NotNil(t, rec.CustomerNumber)
	assert.Equal(t, "123456", *rec.CustomerNumber)
	require.NotNil(t, rec.MeterNumber)
	assert.Equal(t, "G998877", *rec.MeterNumber)

	require.NotNil(t, rec.ConsumptionValue)
	assert.Equal(t, 100.0, *rec.ConsumptionValue)
	require.NotNil(t, rec.ConsumptionUnit)
	assert.Equal(t, "m3", *rec.ConsumptionUnit)
	require.NotNil(t, rec.ConsumptionKWh)
	assert.Equal(t, 1120.0, *rec.ConsumptionKWh)

	require.NotNil(t, rec.MeterReadingStart)
	assert.Equal(t, 1500.0, *rec.MeterReadingStart)
	require.NotNil(t, rec.MeterReadingEnd)
	assert.Equal(t, 1600.0, *rec.MeterReadingEnd)

	require.NotNil(t, rec.PeriodStart)
	assert.Equal(t, "2024-01-01", *rec.PeriodStart)
	require.NotNil(t, rec.PeriodEnd)
	assert.Equal(t, "2024-02-29", *rec.PeriodEnd)

	require.NotNil(t, rec.CostNet)
	assert.Equal(t, 100.0, *rec.CostNet)
	require.NotNil(t, rec.CostGross)
	assert.Equal(t, 123.0, *rec.CostGross)

	require.NotNil(t, rec.DueDate)
	assert.Equal(t, "2024-03-24", *rec.DueDate)
}

// Interim payments print smaller running totals under the same label; the
// original invoice total is the largest occurrence.
func TestPGNiGAmountDueTakesMaxOccurrence(t *testing.T) {
	e := NewEngine()
	rec, err := e.Extract(domain.ProviderPGNiG, pgnigText)
	require.NoError(t, err)

	require.NotNil(t, rec.AmountToPay)
	assert.Equal(t, 120.00, *rec.AmountToPay)
}
