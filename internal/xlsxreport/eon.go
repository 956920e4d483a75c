// Package xlsxreport parses the document-list XLSX reports that e.on's
// customer portal exports. The report carries amounts and dates only; metered
// consumption comes from the invoice documents themselves.
package xlsxreport

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"rachunki/internal/domain"
	"rachunki/internal/locale"
)

// Record is one row of the exported document list.
type Record struct {
	DocType         domain.DocumentType
	DocTypeOriginal string
	DocNumber       *string
	IssueDate       *string
	DueDate         *string
	AmountPLN       *float64
	PaymentStatus   *string
	Location        string
	AccountNumber   *string
}

// ConsumptionRecord is a usage-period entry derived from settlement and
// forecast rows of the report.
type ConsumptionRecord struct {
	Provider    domain.Provider
	UtilityType domain.UtilityType
	Location    string
	PeriodStart *string
	PeriodEnd   *string
	CostGross   float64
	IsEstimate  bool
	DocNumber   *string
	DocType     domain.DocumentType
}

var docTypeLabels = map[string]domain.DocumentType{
	"Faktura rozliczeniowa": domain.DocTypeSettlement,
	"Prognoza zużycia":      domain.DocTypeForecast,
	"Faktura korygująca":    domain.DocTypeCorrection,
	"Nota odsetkowa":        domain.DocTypeInterest,
	"Wpłata bankowa":        domain.DocTypePayment,
}

// ParseReport reads an e.on XLSX report from disk. The header row is located
// by its "No." marker, rows above it are portal boilerplate.
func ParseReport(path string) ([]Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening report %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}

	headerRow := -1
	for i, row := range rows {
		if i >= 20 {
			break
		}
		if len(row) > 0 && row[0] == "No." {
			headerRow = i
			break
		}
	}
	if headerRow < 0 {
		return nil, fmt.Errorf("report %s: header row not found", path)
	}

	var records []Record
	for _, row := range rows[headerRow+1:] {
		if len(row) < 8 {
			continue
		}
		no, account := cell(row, 0), cell(row, 1)
		docType := cell(row, 2)
		if no == "" || docType == "" {
			continue
		}

		rec := Record{
			DocType:         normalizeDocType(docType),
			DocTypeOriginal: docType,
			DocNumber:       optional(cell(row, 3)),
			IssueDate:       normalizeDate(cell(row, 4)),
			DueDate:         normalizeDate(cell(row, 5)),
			AmountPLN:       parseAmount(cell(row, 6)),
			PaymentStatus:   optional(cell(row, 7)),
		}

		// Account cells read "80000080441 Płatnicza 65", number then address.
		if account != "" {
			parts := strings.SplitN(account, " ", 2)
			rec.AccountNumber = optional(parts[0])
			if len(parts) > 1 {
				rec.Location = strings.TrimSpace(parts[1])
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// Consumption derives usage-period entries from the settlement and forecast
// rows, which represent actual metered periods.
func Consumption(records []Record) []ConsumptionRecord {
	var out []ConsumptionRecord
	for _, rec := range records {
		if rec.DocType != domain.DocTypeSettlement && rec.DocType != domain.DocTypeForecast {
			continue
		}
		if rec.AmountPLN == nil {
			continue
		}
		start := rec.DueDate
		if start == nil {
			start = rec.IssueDate
		}
		out = append(out, ConsumptionRecord{
			Provider:    domain.ProviderEON,
			UtilityType: domain.UtilityElectricity,
			Location:    rec.Location,
			PeriodStart: start,
			PeriodEnd:   rec.IssueDate,
			CostGross:   *rec.AmountPLN,
			IsEstimate:  rec.DocType == domain.DocTypeForecast,
			DocNumber:   rec.DocNumber,
			DocType:     rec.DocType,
		})
	}
	return out
}

func normalizeDocType(label string) domain.DocumentType {
	if dt, ok := docTypeLabels[label]; ok {
		return dt
	}
	return domain.DocumentType(strings.ReplaceAll(strings.ToLower(label), " ", "_"))
}

func normalizeDate(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "-" {
		return nil
	}
	if iso, err := locale.ParseDate(raw); err == nil {
		return &iso
	}
	return &raw
}

func parseAmount(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "-" {
		return nil
	}
	v, err := locale.ParseNumber(raw)
	if err != nil {
		return nil
	}
	return &v
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
