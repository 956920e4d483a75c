package extract

import (
	"regexp"

	"rachunki/internal/domain"
	"rachunki/internal/locale"
)

var mpwikCorrectionRe = regexp.MustCompile(`(?i)korygując|KOR`)

// classifyMPWiK flags correcting invoices; everything else is a settlement.
func classifyMPWiK(text string) domain.DocumentType {
	if mpwikCorrectionRe.MatchString(text) {
		return domain.DocTypeCorrection
	}
	return domain.DocTypeSettlement
}

// mpwikProfile covers MPWiK water/sewage invoices. Layouts changed over the
// years: consumption has three variants (meter-reading row, inline line-item
// total, newline-separated advance items) tried most-recent-first, and cost
// lines appear both space-separated and newline-separated.
func mpwikProfile() *Profile {
	return &Profile{
		Provider: domain.ProviderMPWiK,
		DocType:  domain.DocTypeSettlement,
		Rules:    mpwikRules(),
	}
}

// mpwikCorrectionProfile shares the settlement rules; the engine marks the
// record as a correction from the document type.
func mpwikCorrectionProfile() *Profile {
	return &Profile{
		Provider: domain.ProviderMPWiK,
		DocType:  domain.DocTypeCorrection,
		Rules:    mpwikRules(),
	}
}

func mpwikRules() []Rule {
	return []Rule{
		{
			Field:   "doc_number",
			Pattern: re(`Faktura\s+(?:korygując[a-z]*\s+)?nr\s+(\d+/\d+(?:/KOR)?)`),
			Apply:   setString(func(r *domain.ParsedRecord, v string) { r.DocNumber = &v }),
		},
		{
			// Legacy abbreviation used by older invoices.
			Field:   "doc_number",
			Pattern: re(`F-ra\s+nr\s+(\d+/\d+(?:/KOR)?)`),
			Apply:   setString(func(r *domain.ParsedRecord, v string) { r.DocNumber = &v }),
		},
		{
			Field:   "issue_date",
			Pattern: re(`z dnia\s+(\d{2}-\d{2}-\d{4})`),
			Apply:   setDate(func(r *domain.ParsedRecord, v string) { r.IssueDate = &v }),
		},
		{
			Field:   "location",
			Pattern: re(`ul\.\s+(Płatnicza\s+\d+|Rydygiera\s+\d+)`),
			Apply:   setString(func(r *domain.ParsedRecord, v string) { r.Location = &v }),
		},
		{
			Field:   "amount_to_pay",
			Pattern: re(`Wartość faktury\s*\(zł\):\s*([\d\s]+[,.]?\d*)`),
			Apply:   setNumber(func(r *domain.ParsedRecord, v float64) { r.AmountToPay = &v }),
		},
		{
			Field:   "due_date",
			Pattern: re(`Termin płatności:\s*(\d{2}-\d{2}-\d{4})`),
			Apply:   setDate(func(r *domain.ParsedRecord, v string) { r.DueDate = &v }),
		},
		{
			Field:   "consumption",
			Pattern: re(`(\d+)\s+odczyt\s+(\d{2}-\d{2}-\d{4})\s+([\d,.]+)\s+(\d{2}-\d{2}-\d{4})\s+([\d,.]+)\s+m3\s+([\d,.]+)`),
			Apply:   applyMPWiKMeterReading,
		},
		{
			// Older inline layout: quantity inside the delivery line item.
			Field:   "consumption",
			Pattern: re(`Dostarczanie wody\s+m3\s+[\d-]+\s+[\d-]+\s+([\d,.]+)`),
			Apply: func(matches [][]string, rec *domain.ParsedRecord) error {
				v, err := locale.ParseNumber(matches[0][1])
				if err != nil {
					return err
				}
				rec.ConsumptionValue = &v
				rec.ConsumptionUnit = ptr("m3")
				return nil
			},
		},
		{
			// Newest layout: advance items on separate lines, summed.
			Field:   "consumption",
			All:     true,
			Pattern: re(`(?s)Dostarcz[ea]nie wody.*?m3\s*\n\s*\d{2}-\d{2}-\d{4}\s*\n\s*\d{2}-\d{2}-\d{4}\s*\n\s*([\d,.]+)`),
			Apply: func(matches [][]string, rec *domain.ParsedRecord) error {
				total := 0.0
				for _, m := range matches {
					v, err := locale.ParseNumber(m[1])
					if err != nil {
						return err
					}
					total += v
				}
				rec.ConsumptionValue = &total
				rec.ConsumptionUnit = ptr("m3")
				return nil
			},
		},
		{
			Field:   "cost_components",
			All:     true,
			Pattern: re(`(?m)(Dostarczanie wody|Dostarczenie wody[^\n]*|Odprowadzanie ścieków[^\n]*?)\s+m3\s+(\d{2}-\d{2}-\d{4})\s+(\d{2}-\d{2}-\d{4})\s+([\d,.]+)\s+([\d,.]+)\s+[nb]\s+([\d,.]+)\s+(\d+)\s+([\d,.]+)\s+([\d,.-]+)`),
			Apply:   applyMPWiKCostLines,
		},
		{
			// Newline-separated table cells from the newer PDF layout.
			Field:   "cost_components",
			All:     true,
			Pattern: re(`(Dostarczanie wody|Dostarcz[ea]nie wody[^\n]*|Odprowadzanie ścieków[^\n]*)\n(?:rutynowa\n)?m3\n(\d{2}-\d{2}-\d{4})\n(\d{2}-\d{2}-\d{4})\n([\d,.]+)\n([\d,.]+)\n[nb]\n([\d,.]+)\n(\d+)\n([\d,.]+)\n([\d,.-]+)`),
			Apply:   applyMPWiKCostLines,
		},
		{
			Field:   "totals",
			Pattern: re(`Razem:\s+([\d,.]+)\s+([\d,.]+)\s+([\d,.]+)`),
			Apply:   setTotals(),
		},
		{
			Field:   "totals",
			Pattern: re(`Wartość faktury\s*\(zł\):\s*([\d\s,.]+)`),
			Apply: func(matches [][]string, rec *domain.ParsedRecord) error {
				gross, err := locale.ParseNumber(matches[0][1])
				if err != nil {
					return err
				}
				rec.CostGross = &gross
				return nil
			},
		},
	}
}

func applyMPWiKMeterReading(matches [][]string, rec *domain.ParsedRecord) error {
	m := matches[0]
	start, err := locale.ParseDate(m[2])
	if err != nil {
		return err
	}
	end, err := locale.ParseDate(m[4])
	if err != nil {
		return err
	}
	readStart, err := locale.ParseNumber(m[3])
	if err != nil {
		return err
	}
	readEnd, err := locale.ParseNumber(m[5])
	if err != nil {
		return err
	}
	consumption, err := locale.ParseNumber(m[6])
	if err != nil {
		return err
	}
	rec.MeterNumber = ptr(m[1])
	rec.MeterReadingStart = &readStart
	rec.MeterReadingEnd = &readEnd
	rec.ConsumptionValue = &consumption
	rec.ConsumptionUnit = ptr("m3")
	rec.MeterReadings = append(rec.MeterReadings, domain.MeterReading{
		MeterNumber:  m[1],
		PeriodStart:  &start,
		PeriodEnd:    &end,
		ReadingStart: &readStart,
		ReadingEnd:   &readEnd,
		ReadingType:  "odczyt",
		Consumption:  &consumption,
		Unit:         "m3",
	})
	return nil
}

// applyMPWiKCostLines maps a matched cost row: name, period, quantity, unit
// price, net, VAT rate, VAT amount, gross.
func applyMPWiKCostLines(matches [][]string, rec *domain.ParsedRecord) error {
	for _, m := range matches {
		start, err := locale.ParseDate(m[2])
		if err != nil {
			return err
		}
		end, err := locale.ParseDate(m[3])
		if err != nil {
			return err
		}
		qty, err := locale.ParseNumber(m[4])
		if err != nil {
			return err
		}
		price, err := locale.ParseNumber(m[5])
		if err != nil {
			return err
		}
		net, err := locale.ParseNumber(m[6])
		if err != nil {
			return err
		}
		rate, err := locale.ParseNumber(m[7])
		if err != nil {
			return err
		}
		vat, err := locale.ParseNumber(m[8])
		if err != nil {
			return err
		}
		gross, err := locale.ParseNumber(m[9])
		if err != nil {
			return err
		}
		rec.CostComponents = append(rec.CostComponents, domain.CostComponent{
			Name:        trim(m[1]),
			Quantity:    &qty,
			Unit:        ptr("m3"),
			PeriodStart: &start,
			PeriodEnd:   &end,
			UnitPrice:   &price,
			VATRate:     &rate,
			NetAmount:   &net,
			VATAmount:   &vat,
			GrossAmount: &gross,
		})
	}
	return nil
}
