package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rachunki/internal/domain"
)

const eonForecastText = `Prognoza zużycia nr 12345678 z dnia 05.03.2024
e.on Polska S.A.
Miejsce dostarczania energii: Warszawa, Płatnicza 65
Konto umowy: 900123456
Grupa taryfowa: G12
Produkt: eon Start
Prognoza na okres od 01.04.2024 do 30.09.2024
Należność 456,78 płatna do 15.04.2024
Prognozowane zużycie Dzień: 300 | Noc: 200
Wartość netto Podatek VAT Wartość brutto
Razem 371,37 85,41 456,78
Dziękujemy za terminowe płatności
`

func TestEONForecastExtraction(t *testing.T) {
	e := NewEngine()
	rec, err := e.Extract(domain.ProviderEON, eonForecastText)
	require.NoError(t, err)

	assert.Equal(t, domain.DocTypeForecast, rec.DocType)
	assert.True(t, rec.IsEstimate)
	assert.False(t, rec.IsCorrection)
	assert.Equal(t, domain.UtilityElectricity, rec.UtilityType)

	require.NotNil(t, rec.DocNumber)
	assert.Equal(t, "12345678", *rec.DocNumber)
	require.NotNil(t, rec.IssueDate)
	assert.Equal(t, "2024-03-05", *rec.IssueDate)
	require.NotNil(t, rec.Location)
	assert.Equal(t, "Płatnicza 65", *rec.Location)
	require.NotNil(t, rec.AccountNumber)
	assert.Equal(t, "900123456", *rec.AccountNumber)
	require.NotNil(t, rec.TariffGroup)
	assert.Equal(t, "G12", *rec.TariffGroup)

	require.NotNil(t, rec.PeriodStart)
	assert.Equal(t, "2024-04-01", *rec.PeriodStart)
	require.NotNil(t, rec.PeriodEnd)
	assert.Equal(t, "2024-09-30", *rec.PeriodEnd)

	require.NotNil(t, rec.AmountToPay)
	assert.Equal(t, 456.78, *rec.AmountToPay)
	require.NotNil(t, rec.DueDate)
	assert.Equal(t, "2024-04-15", *rec.DueDate)

	require.NotNil(t, rec.ConsumptionDayKWh)
	assert.Equal(t, 300.0, *rec.ConsumptionDayKWh)
	require.NotNil(t, rec.ConsumptionNightKWh)
	assert.Equal(t, 200.0, *rec.ConsumptionNightKWh)
	require.NotNil(t, rec.ConsumptionKWh)
	assert.Equal(t, 500.0, *rec.ConsumptionKWh)

	require.NotNil(t, rec.CostGross)
	assert.Equal(t, 456.78, *rec.CostGross)
}

const eonSettlementText = `Faktura VAT nr 55512345 z dnia 10.03.2024
e.on Polska S.A.
Miejsce dostarczania energii: Warszawa, Płatnicza 65
Konto umowy: 900123456
Grupa taryfowa: G12
Rozliczenie sprzedaży i dystrybucji energii elektrycznej w okresie od 01.01.2024 do 29.02.2024
Wskazania układu pomiarowego
90123456
dzienna
01.01.24-29.02.24
1 000,0
1 010,0
R
10,0
90123456
nocna
01.01.24-29.02.24
2 000,0
2 020,0
R
20,0
90123457
dzienna
01.01.24-29.02.24
500,0
515,0
R
15,0
Sprzedaż i dystrybucja energii elektrycznej
Razem
100,00
23,00
123,00
Kwota płatna do 24.03.2024
`

func TestEONSettlementExtraction(t *testing.T) {
	e := NewEngine()
	rec, err := e.Extract(domain.ProviderEON, eonSettlementText)
	require.NoError(t, err)

	assert.Equal(t, domain.DocTypeSettlement, rec.DocType)
	assert.False(t, rec.IsEstimate)

	require.NotNil(t, rec.DocNumber)
	assert.Equal(t, "55512345", *rec.DocNumber)
	require.NotNil(t, rec.PeriodStart)
	assert.Equal(t, "2024-01-01", *rec.PeriodStart)
	require.NotNil(t, rec.PeriodEnd)
	assert.Equal(t, "2024-02-29", *rec.PeriodEnd)

	require.Len(t, rec.MeterReadings, 3)
	assert.Equal(t, "dzienna", rec.MeterReadings[0].Zone)
	assert.Equal(t, "nocna", rec.MeterReadings[1].Zone)
	assert.Equal(t, 10.0, *rec.MeterReadings[0].Consumption)
	assert.Equal(t, 20.0, *rec.MeterReadings[1].Consumption)
	assert.Equal(t, 15.0, *rec.MeterReadings[2].Consumption)
	assert.Equal(t, 1000.0, *rec.MeterReadings[0].ReadingStart)
	assert.Equal(t, 1010.0, *rec.MeterReadings[0].ReadingEnd)

	// Total is the zone sum; the per-zone breakdown stays available. Two
	// meters report a day zone and the later reading wins.
	require.NotNil(t, rec.ConsumptionKWh)
	assert.Equal(t, 45.0, *rec.ConsumptionKWh)
	require.NotNil(t, rec.ConsumptionDayKWh)
	assert.Equal(t, 15.0, *rec.ConsumptionDayKWh)
	require.NotNil(t, rec.ConsumptionNightKWh)
	assert.Equal(t, 20.0, *rec.ConsumptionNightKWh)

	require.NotNil(t, rec.CostNet)
	assert.Equal(t, 100.0, *rec.CostNet)
	require.NotNil(t, rec.CostGross)
	assert.Equal(t, 123.0, *rec.CostGross)

	// No direct amount-due row in this layout, gross total stands in.
	require.NotNil(t, rec.AmountToPay)
	assert.Equal(t, 123.0, *rec.AmountToPay)
	require.NotNil(t, rec.DueDate)
	assert.Equal(t, "2024-03-24", *rec.DueDate)
}

func TestClassifyEON(t *testing.T) {
	assert.Equal(t, domain.DocTypeForecast, classifyEON("Prognoza zużycia nr 1 z dnia 01.01.2024"))
	assert.Equal(t, domain.DocTypeSettlement, classifyEON("Faktura VAT nr 1 z dnia 01.01.2024"))
}
