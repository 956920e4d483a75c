package xlsxreport

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"rachunki/internal/domain"
)

func writeTestReport(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	rows := [][]any{
		{"e.on Polska"},
		{"Lista dokumentów"},
		{"No.", "Konto umowy", "Typ dokumentu", "Numer", "Data wystawienia", "Termin płatności", "Kwota", "Status"},
		{"1", "80000080441 Płatnicza 65", "Faktura rozliczeniowa", "55512345", "10-03-2024", "24-03-2024", "123.45", "Zapłacona"},
		{"2", "80000080441 Płatnicza 65", "Prognoza zużycia", "55512346", "05-03-2024", "15-04-2024", "456.78", "-"},
		{"3", "80000080441 Płatnicza 65", "Wpłata bankowa", "55512347", "01-03-2024", "-", "-", "-"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseReport(t *testing.T) {
	records, err := ParseReport(writeTestReport(t))
	require.NoError(t, err)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, domain.DocTypeSettlement, first.DocType)
	assert.Equal(t, "Faktura rozliczeniowa", first.DocTypeOriginal)
	require.NotNil(t, first.DocNumber)
	assert.Equal(t, "55512345", *first.DocNumber)
	require.NotNil(t, first.IssueDate)
	assert.Equal(t, "2024-03-10", *first.IssueDate)
	require.NotNil(t, first.DueDate)
	assert.Equal(t, "2024-03-24", *first.DueDate)
	require.NotNil(t, first.AmountPLN)
	assert.Equal(t, 123.45, *first.AmountPLN)
	assert.Equal(t, "Płatnicza 65", first.Location)
	require.NotNil(t, first.AccountNumber)
	assert.Equal(t, "80000080441", *first.AccountNumber)

	forecast := records[1]
	assert.Equal(t, domain.DocTypeForecast, forecast.DocType)
	assert.Nil(t, forecast.PaymentStatus)

	payment := records[2]
	assert.Equal(t, domain.DocTypePayment, payment.DocType)
	assert.Nil(t, payment.DueDate)
	assert.Nil(t, payment.AmountPLN)
}

func TestParseReportMissingHeader(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	row := []any{"just", "some", "cells"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &row))
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	require.NoError(t, f.SaveAs(path))

	_, err := ParseReport(path)
	assert.Error(t, err)
}

func TestConsumptionDerivation(t *testing.T) {
	records, err := ParseReport(writeTestReport(t))
	require.NoError(t, err)

	consumption := Consumption(records)
	require.Len(t, consumption, 2)

	assert.Equal(t, domain.ProviderEON, consumption[0].Provider)
	assert.Equal(t, domain.UtilityElectricity, consumption[0].UtilityType)
	assert.Equal(t, 123.45, consumption[0].CostGross)
	assert.False(t, consumption[0].IsEstimate)
	assert.True(t, consumption[1].IsEstimate)
}

func TestNormalizeDocTypeFallback(t *testing.T) {
	assert.Equal(t, domain.DocumentType("nota_obciążeniowa"), normalizeDocType("Nota obciążeniowa"))
}
