package extract

import (
	"strings"

	"rachunki/internal/domain"
	"rachunki/internal/locale"
)

// classifyPGNiG: gas invoices come in a single settlement layout.
func classifyPGNiG(string) domain.DocumentType {
	return domain.DocTypeSettlement
}

// pgnigProfile covers PGNiG gas settlement invoices. The amount-due rule is
// a multi-occurrence max: interim payments print smaller running totals
// under the same label, and those are snapshots, not conflicting matches.
func pgnigProfile() *Profile {
	return &Profile{
		Provider: domain.ProviderPGNiG,
		DocType:  domain.DocTypeSettlement,
		Rules: []Rule{
			{
				Field:   "doc_number",
				Pattern: re(`Faktura VAT nr\s+(P/\d+/\d+/\d+)`),
				Apply:   setString(func(r *domain.ParsedRecord, v string) { r.DocNumber = &v }),
			},
			{
				Field:   "issue_date",
				Pattern: re(`Faktura VAT nr\s+\S+\s+z dnia\s+(\d{2}\.\d{2}\.\d{4})`),
				Apply:   setDate(func(r *domain.ParsedRecord, v string) { r.IssueDate = &v }),
			},
			{
				Field:   "location",
				Pattern: re(`Adres punktu poboru:\s*(?:Numer Klienta:\s*\d+\s*)?(ul\.\s*\S+\s+\d+)`),
				Apply: func(matches [][]string, rec *domain.ParsedRecord) error {
					loc := trim(strings.Replace(matches[0][1], "ul. ", "", 1))
					rec.Location = &loc
					return nil
				},
			},
			{
				Field:   "customer_number",
				Pattern: re(`Numer [Kk]lienta:\s*(\d+)`),
				Apply:   setString(func(r *domain.ParsedRecord, v string) { r.CustomerNumber = &v }),
			},
			{
				Field:   "meter_number",
				Pattern: re(`nr gazomierza:\s*(\S+)`),
				Apply:   setString(func(r *domain.ParsedRecord, v string) { r.MeterNumber = &v }),
			},
			{
				Field:   "amount_to_pay",
				All:     true,
				Pattern: re(`(?:Wartość do zapłaty|Do zapłaty):?\s*([\d ]+[,.]\d+)\s*zł`),
				Apply:   setMaxAmount(func(r *domain.ParsedRecord, v float64) { r.AmountToPay = &v }),
			},
			{
				Field:   "due_date",
				Pattern: re(`Termin płatności\*?:\s*(\d{2}\.\d{2}\.\d{4})`),
				Apply:   setDate(func(r *domain.ParsedRecord, v string) { r.DueDate = &v }),
			},
			{
				Field:   "consumption",
				Pattern: re(`Razem zużycie\s+(\d+)\s*\[m3\]\s+(\d+)\s*\[kWh\]`),
				Apply: func(matches [][]string, rec *domain.ParsedRecord) error {
					m3, err := locale.ParseNumber(matches[0][1])
					if err != nil {
						return err
					}
					kwh, err := locale.ParseNumber(matches[0][2])
					if err != nil {
						return err
					}
					rec.ConsumptionValue = &m3
					rec.ConsumptionUnit = ptr("m3")
					rec.ConsumptionKWh = &kwh
					return nil
				},
			},
			{
				Field:   "meter_readings",
				Pattern: re(`(\d+)\s+([ROS])\s+(\d+)\s+([ROS])\s+(\d+)\s*m³`),
				Apply: func(matches [][]string, rec *domain.ParsedRecord) error {
					start, err := locale.ParseNumber(matches[0][1])
					if err != nil {
						return err
					}
					end, err := locale.ParseNumber(matches[0][3])
					if err != nil {
						return err
					}
					consumption, err := locale.ParseNumber(matches[0][5])
					if err != nil {
						return err
					}
					rec.MeterReadingStart = &start
					rec.MeterReadingEnd = &end
					rec.MeterReadings = append(rec.MeterReadings, domain.MeterReading{
						Zone:         "",
						ReadingStart: &start,
						ReadingEnd:   &end,
						ReadingType:  matches[0][2],
						Consumption:  &consumption,
						Unit:         "m3",
					})
					return nil
				},
			},
			{
				Field:   "period",
				Pattern: re(`[Rr]ozliczeniowym\s+od\s+(\d{2}\.\d{2}\.\d{4})\s+do\s+(\d{2}\.\d{2}\.\d{4})`),
				Apply:   setPeriod(),
			},
			{
				Field:   "component_subscription",
				Pattern: re(`Opłata abonamentowa\s+\S+\s+[\d.]+\s+[\d.]+\s+.*?([\d,]+)\s+mc\s+([\d,]+)\s+(\d+)\s+([\d,]+)`),
				Apply:   appendPGNiGComponent("Opłata abonamentowa", "mc"),
			},
			{
				Field:   "component_fuel",
				Pattern: re(`(?s)Paliwo gazowe\s+\S+\s+\S+\s+.*?(\d+)\s*kWh\s+([\d,]+)\s+(\d+)\s+([\d\s,]+?)(?:\n|Dystrybucyjna)`),
				Apply:   appendPGNiGComponent("Paliwo gazowe", "kWh"),
			},
			{
				Field:   "component_dist_fixed",
				All:     true,
				Pattern: re(`Dystrybucyjna stała\s+\S+\s+(\d{2}\.\d{2}\.\d{4})\s+(\d{2}\.\d{2}\.\d{4})\s+.*?([\d,]+)\s+mc\s+([\d,]+)\s+(\d+)\s+([\d,]+)`),
				Apply:   applyPGNiGDistFixed,
			},
			{
				Field:   "component_dist_variable",
				Pattern: re(`(?s)Dystrybucyjna zmienna\s+\S+\s+\S+\s+.*?(\d+)\s*kWh\s+([\d,]+)\s+(\d+)\s+([\d,]+)`),
				Apply:   appendPGNiGComponent("Dystrybucyjna zmienna", "kWh"),
			},
			{
				Field:   "totals",
				Pattern: re(`Sprzedaż ogółem\s+([\d ,]+)\s+([\d ,]+)\s+([\d ,]+)`),
				Apply:   setTotals(),
			},
		},
	}
}

// appendPGNiGComponent parses the common quantity/price/VAT-rate/net group
// layout shared by most PGNiG cost lines.
func appendPGNiGComponent(name, unit string) Transform {
	return func(matches [][]string, rec *domain.ParsedRecord) error {
		qty, err := locale.ParseNumber(matches[0][1])
		if err != nil {
			return err
		}
		price, err := locale.ParseNumber(matches[0][2])
		if err != nil {
			return err
		}
		rate, err := locale.ParseNumber(matches[0][3])
		if err != nil {
			return err
		}
		net, err := locale.ParseNumber(matches[0][4])
		if err != nil {
			return err
		}
		rec.CostComponents = append(rec.CostComponents, domain.CostComponent{
			Name:      name,
			Quantity:  &qty,
			Unit:      ptr(unit),
			UnitPrice: &price,
			VATRate:   &rate,
			NetAmount: &net,
		})
		return nil
	}
}

// applyPGNiGDistFixed handles the fixed distribution fee, which repeats once
// per tariff sub-period within the billing window.
func applyPGNiGDistFixed(matches [][]string, rec *domain.ParsedRecord) error {
	for _, m := range matches {
		start, err := locale.ParseDate(m[1])
		if err != nil {
			return err
		}
		end, err := locale.ParseDate(m[2])
		if err != nil {
			return err
		}
		qty, err := locale.ParseNumber(m[3])
		if err != nil {
			return err
		}
		price, err := locale.ParseNumber(m[4])
		if err != nil {
			return err
		}
		rate, err := locale.ParseNumber(m[5])
		if err != nil {
			return err
		}
		net, err := locale.ParseNumber(m[6])
		if err != nil {
			return err
		}
		rec.CostComponents = append(rec.CostComponents, domain.CostComponent{
			Name:        "Dystrybucyjna stała",
			PeriodStart: &start,
			PeriodEnd:   &end,
			Quantity:    &qty,
			Unit:        ptr("mc"),
			UnitPrice:   &price,
			VATRate:     &rate,
			NetAmount:   &net,
		})
	}
	return nil
}
