package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rachunki/internal/domain"
)

const mpwikSettlementText = `Faktura nr 123/2024
z dnia 10-03-2024
Nabywca: Jan Nowak
ul. Płatnicza 65
Wartość faktury (zł): 220,00
Termin płatności: 24-03-2024
12345678 odczyt 01-01-2024 100,00 01-03-2024 115,50 m3 15,50
Razem: 203,70 16,30 220,00
`

func TestMPWiKSettlementExtraction(t *testing.T) {
	e := NewEngine()
	rec, err := e.Extract(domain.ProviderMPWiK, mpwikSettlementText)
	require.NoError(t, err)

	assert.Equal(t, domain.DocTypeSettlement, rec.DocType)
	assert.Equal(t, domain.UtilityWater, rec.UtilityType)
	assert.False(t, rec.IsCorrection)

	require.NotNil(t, rec.DocNumber)
	assert.Equal(t, "123/2024", *rec.DocNumber)
	require.NotNil(t, rec.IssueDate)
	assert.Equal(t, "2024-03-10", *rec.IssueDate)
	require.NotNil(t, rec.Location)
	assert.Equal(t, "Płatnicza 65", *rec.Location)

	require.NotNil(t, rec.AmountToPay)
	assert.Equal(t, 220.0, *rec.AmountToPay)
	require.NotNil(t, rec.DueDate)
	assert.Equal(t, "2024-03-24", *rec.DueDate)

	require.NotNil(t, rec.MeterNumber)
	assert.Equal(t, "12345678", *rec.MeterNumber)
	require.NotNil(t, rec.MeterReadingStart)
	assert.Equal(t, 100.0, *rec.MeterReadingStart)
	require.NotNil(t, rec.MeterReadingEnd)
	assert.Equal(t, 115.5, *rec.MeterReadingEnd)
	require.NotNil(t, rec.ConsumptionValue)
	assert.Equal(t, 15.5, *rec.ConsumptionValue)
	require.NotNil(t, rec.ConsumptionUnit)
	assert.Equal(t, "m3", *rec.ConsumptionUnit)

	// Widest span over the meter reading periods.
	require.NotNil(t, rec.PeriodStart)
	assert.Equal(t, "2024-01-01", *rec.PeriodStart)
	require.NotNil(t, rec.PeriodEnd)
	assert.Equal(t, "2024-03-01", *rec.PeriodEnd)

	require.NotNil(t, rec.CostNet)
	assert.Equal(t, 203.7, *rec.CostNet)
	require.NotNil(t, rec.CostGross)
	assert.Equal(t, 220.0, *rec.CostGross)
}

const mpwikAdvanceText = `F-ra nr 55/2019
z dnia 05-06-2019
Nabywca: Jan Nowak
ul. Rydygiera 11
Wartość faktury (zł): 95,00
Termin płatności: 19-06-2019
Dostarczenie wody - zaliczka
m3
01-04-2019
30-04-2019
10,00
Dostarczenie wody - zaliczka
m3
01-05-2019
31-05-2019
12,00
`

// The newest layout prints advance items as separate line blocks; the total
// is their sum.
func TestMPWiKAdvanceConsumptionSummed(t *testing.T) {
	e := NewEngine()
	rec, err := e.Extract(domain.ProviderMPWiK, mpwikAdvanceText)
	require.NoError(t, err)

	require.NotNil(t, rec.DocNumber)
	assert.Equal(t, "55/2019", *rec.DocNumber)
	require.NotNil(t, rec.Location)
	assert.Equal(t, "Rydygiera 11", *rec.Location)

	require.NotNil(t, rec.ConsumptionValue)
	assert.Equal(t, 22.0, *rec.ConsumptionValue)
	require.NotNil(t, rec.ConsumptionUnit)
	assert.Equal(t, "m3", *rec.ConsumptionUnit)
}

func TestMPWiKCorrectionClassified(t *testing.T) {
	text := `Faktura korygująca nr 124/2024/KOR
z dnia 12-03-2024
ul. Płatnicza 65
Wartość faktury (zł): -20,00
`
	e := NewEngine()
	rec, err := e.Extract(domain.ProviderMPWiK, text)
	require.NoError(t, err)

	assert.Equal(t, domain.DocTypeCorrection, rec.DocType)
	assert.True(t, rec.IsCorrection)
	assert.False(t, rec.IsEstimate)
	require.NotNil(t, rec.DocNumber)
	assert.Equal(t, "124/2024/KOR", *rec.DocNumber)
}

func TestClassifyMPWiK(t *testing.T) {
	assert.Equal(t, domain.DocTypeCorrection, classifyMPWiK("Faktura korygująca nr 1/KOR"))
	assert.Equal(t, domain.DocTypeSettlement, classifyMPWiK("Faktura nr 1/2024 z dnia 01-01-2024"))
}
