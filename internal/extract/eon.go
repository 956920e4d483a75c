package extract

import (
	"strings"

	"rachunki/internal/domain"
	"rachunki/internal/locale"
)

// classifyEON distinguishes forecast documents from settlement invoices.
// Forecasts announce themselves in the document header.
func classifyEON(text string) domain.DocumentType {
	head := text
	if len(head) > 200 {
		head = head[:200]
	}
	if strings.Contains(head, "Prognoza zużycia") {
		return domain.DocTypeForecast
	}
	return domain.DocTypeSettlement
}

func eonCommonRules(docNumberLabel string) []Rule {
	return []Rule{
		{
			Field:   "doc_number",
			Pattern: re(docNumberLabel + ` nr\s+(\d+)`),
			Apply:   setString(func(r *domain.ParsedRecord, v string) { r.DocNumber = &v }),
		},
		{
			Field:   "issue_date",
			Pattern: re(docNumberLabel + ` nr\s+\d+\s+z dnia\s+(\d{2}\.\d{2}\.\d{4})`),
			Apply:   setDate(func(r *domain.ParsedRecord, v string) { r.IssueDate = &v }),
		},
		{
			Field:   "location",
			Pattern: re(`Miejsce dostarczania energii:\s*(?:Warszawa,\s*)?([^\n]+)`),
			Apply:   setString(func(r *domain.ParsedRecord, v string) { r.Location = &v }),
		},
		{
			Field:   "account_number",
			Pattern: re(`Konto umowy:\s*(\d+)`),
			Apply:   setString(func(r *domain.ParsedRecord, v string) { r.AccountNumber = &v }),
		},
		{
			Field:   "tariff_group",
			Pattern: re(`Grupa taryfowa:\s*(\S+)`),
			Apply:   setString(func(r *domain.ParsedRecord, v string) { r.TariffGroup = &v }),
		},
		{
			Field:   "product",
			Pattern: re(`Produkt:[ \t]*([^\n]+)`),
			Apply:   setString(func(r *domain.ParsedRecord, v string) { r.Product = &v }),
		},
	}
}

// eonForecastProfile covers "Prognoza zużycia" pre-billing documents: a
// period, one amount due, a day/night consumption estimate and a single
// net/VAT/gross summary row.
func eonForecastProfile() *Profile {
	rules := eonCommonRules("Prognoza zużycia")
	rules = append(rules,
		Rule{
			Field:   "period",
			Pattern: re(`Prognoza na okres od (\d{2}\.\d{2}\.\d{4}) do (\d{2}\.\d{2}\.\d{4})`),
			Apply:   setPeriod(),
		},
		Rule{
			Field:   "amount_due",
			Pattern: re(`Należność\s+([\d\s,.]+)\s+płatna do\s+(\d{2}\.\d{2}\.\d{4})`),
			Apply: func(matches [][]string, rec *domain.ParsedRecord) error {
				amount, err := locale.ParseNumber(matches[0][1])
				if err != nil {
					return err
				}
				due, err := locale.ParseDate(matches[0][2])
				if err != nil {
					return err
				}
				rec.AmountToPay = &amount
				rec.DueDate = &due
				return nil
			},
		},
		Rule{
			Field:   "consumption_zones",
			Pattern: re(`Dzień:\s*(\d+)\s*\|\s*Noc:\s*(\d+)`),
			Apply: func(matches [][]string, rec *domain.ParsedRecord) error {
				day, err := locale.ParseNumber(matches[0][1])
				if err != nil {
					return err
				}
				night, err := locale.ParseNumber(matches[0][2])
				if err != nil {
					return err
				}
				total := day + night
				rec.ConsumptionDayKWh = &day
				rec.ConsumptionNightKWh = &night
				rec.ConsumptionKWh = &total
				return nil
			},
		},
		Rule{
			Field:   "totals",
			Pattern: re(`Razem\s+([\d\s,.]+)\s+([\d\s,.]+)\s+([\d\s,.]+)`),
			Apply:   setTotals(),
		},
	)
	return &Profile{Provider: domain.ProviderEON, DocType: domain.DocTypeForecast, Rules: rules}
}

// eonSettlementProfile covers "Faktura VAT" settlement invoices. The PDF
// layout places table cells on separate lines, so row rules match across
// line breaks. "Razem" appears once per table section; section rules scope
// each occurrence.
func eonSettlementProfile() *Profile {
	rules := eonCommonRules("Faktura VAT")
	rules = append(rules,
		Rule{
			Field:   "period",
			Pattern: re(`[Rr]ozliczeni[ea]\s+(?:sprzedaży i dystrybucji\s+)?(?:energii elektrycznej\s+)?w okresie od\s+(\d{2}\.\d{2}\.\d{4})\s+do\s+(\d{2}\.\d{2}\.\d{4})`),
			Apply:   setPeriod(),
		},
		Rule{
			// Legacy layout: "Szczegóły rozliczenia za okres od ... do ..."
			Field:   "period",
			Pattern: re(`za okres od\s+(\d{2}\.\d{2}\.\d{4})\s+do\s+(\d{2}\.\d{2}\.\d{4})`),
			Apply:   setPeriod(),
		},
		Rule{
			Field:   "meter_readings",
			All:     true,
			Pattern: re(`(\d{8})\n(dzienna|nocna)\n(\d{2}\.\d{2}\.\d{2})-(\d{2}\.\d{2}\.\d{2})\n([\d ,]+[,.][\d]+)\n([\d ,]+[,.][\d]+)\n([RZSK])\n([\d ,]+[,.][\d]+)`),
			Apply:   applyEONMeterReadings,
		},
		Rule{
			Field:   "cost_lines_zoned",
			All:     true,
			Pattern: re(`(Energia czynna|Opłata sieciowa zmienna)\s*\n\s*(dzienna|nocna)\s*\n\s*[\d.]+-[\d.]+\s*\n\s*(\d+)\s*kWh\s*\n\s*([\d,]+)\s*\n\s*([\d,]+)\s*\n\s*(\d+)\s*\n\s*([\d,]+)\s*\n\s*([\d,]+)`),
			Apply:   applyEONZonedCostLines,
		},
		Rule{
			Field:   "cost_lines_flat",
			All:     true,
			Pattern: re(`(Opłata handlowa|Opłata sieciowa stała|Opłata mocowa|Opłata jakościowa)\s*\n\s*[\d.]+-[\d.]+\s*\n\s*(\d+)\s*(kWh|mc)\s*\n\s*([\d,]+)\s*\n\s*([\d,]+)\s*\n\s*(\d+)\s*\n\s*([\d,]+)\s*\n\s*([\d,]+)`),
			Apply:   applyEONFlatCostLines,
		},
		Rule{
			Field:   "component_sales",
			Section: re(`(?s)Sprzedaż energii elektrycznej.*`),
			Pattern: re(`Razem\n([\d\s,.]+)\n([\d\s,.]+)\n([\d\s,.]+)`),
			Apply:   appendSectionComponent("Sprzedaż energii elektrycznej"),
		},
		Rule{
			Field:   "component_distribution",
			Section: re(`(?s)Dystrybucja energii elektrycznej.*`),
			Pattern: re(`Razem\n([\d\s,.]+)\n([\d\s,.]+)\n([\d\s,.]+)`),
			Apply:   appendSectionComponent("Dystrybucja energii elektrycznej"),
		},
		Rule{
			Field:   "totals",
			Section: re(`(?s)Sprzedaż i dystrybucja energii elektrycznej.*`),
			Pattern: re(`Razem\n([\d\s,.]+)\n([\d\s,.]+)\n([\d\s,.]+)`),
			Apply:   setTotals(),
		},
		Rule{
			// Legacy layout: prognosis-minus-actual settlement difference row.
			Field:   "totals",
			Pattern: re(`Wartość prognozowana minus należność za faktyczne zużycie\n([\d\s,.]+)\n([\d\s,.]+)\n([\d\s,.]+)`),
			Apply:   setTotals(),
		},
		Rule{
			Field:   "actual_cost",
			Pattern: re(`Należność za faktyczne zużycie\n([\d\s,.]+)\n23\n([\d\s,.]+)\n([\d\s,.]+)`),
			Apply: func(matches [][]string, rec *domain.ParsedRecord) error {
				net, err := locale.ParseNumber(matches[0][1])
				if err != nil {
					return err
				}
				vat, err := locale.ParseNumber(matches[0][2])
				if err != nil {
					return err
				}
				gross, err := locale.ParseNumber(matches[0][3])
				if err != nil {
					return err
				}
				rec.CostComponents = append(rec.CostComponents, domain.CostComponent{
					Name:        "Należność za faktyczne zużycie",
					NetAmount:   &net,
					VATAmount:   &vat,
					GrossAmount: &gross,
				})
				return nil
			},
		},
		Rule{
			Field:   "due_date",
			Pattern: re(`płatna do\s+(\d{2}\.\d{2}\.\d{4})`),
			Apply:   setDate(func(r *domain.ParsedRecord, v string) { r.DueDate = &v }),
		},
		Rule{
			Field:   "history",
			Pattern: re(`(?s)aktualne zużycie energii\s+([\d ]+?)\s*kWh.*?zużycie wyniosło\s+([\d ]+?)\s*kWh`),
			Apply: func(matches [][]string, rec *domain.ParsedRecord) error {
				current, err := locale.ParseNumber(matches[0][1])
				if err != nil {
					return err
				}
				previous, err := locale.ParseNumber(matches[0][2])
				if err != nil {
					return err
				}
				rec.CurrentPeriodKWh = &current
				rec.PreviousYearKWh = &previous
				return nil
			},
		},
	)
	return &Profile{Provider: domain.ProviderEON, DocType: domain.DocTypeSettlement, Rules: rules}
}

func applyEONMeterReadings(matches [][]string, rec *domain.ParsedRecord) error {
	for _, m := range matches {
		start, err := locale.ParseDate(m[3])
		if err != nil {
			return err
		}
		end, err := locale.ParseDate(m[4])
		if err != nil {
			return err
		}
		readStart, err := locale.ParseNumber(m[5])
		if err != nil {
			return err
		}
		readEnd, err := locale.ParseNumber(m[6])
		if err != nil {
			return err
		}
		consumption, err := locale.ParseNumber(m[8])
		if err != nil {
			return err
		}
		rec.MeterReadings = append(rec.MeterReadings, domain.MeterReading{
			MeterNumber:  m[1],
			Zone:         m[2],
			PeriodStart:  &start,
			PeriodEnd:    &end,
			ReadingStart: &readStart,
			ReadingEnd:   &readEnd,
			ReadingType:  m[7],
			Consumption:  &consumption,
			Unit:         "kWh",
		})
	}
	return nil
}

func applyEONZonedCostLines(matches [][]string, rec *domain.ParsedRecord) error {
	for _, m := range matches {
		qty, err := locale.ParseNumber(m[3])
		if err != nil {
			return err
		}
		price, err := locale.ParseNumber(m[4])
		if err != nil {
			return err
		}
		net, err := locale.ParseNumber(m[5])
		if err != nil {
			return err
		}
		rate, err := locale.ParseNumber(m[6])
		if err != nil {
			return err
		}
		vat, err := locale.ParseNumber(m[7])
		if err != nil {
			return err
		}
		gross, err := locale.ParseNumber(m[8])
		if err != nil {
			return err
		}
		rec.CostComponents = append(rec.CostComponents, domain.CostComponent{
			Name:        m[1],
			Zone:        ptr(m[2]),
			Quantity:    &qty,
			Unit:        ptr("kWh"),
			UnitPrice:   &price,
			VATRate:     &rate,
			NetAmount:   &net,
			VATAmount:   &vat,
			GrossAmount: &gross,
		})
	}
	return nil
}

func applyEONFlatCostLines(matches [][]string, rec *domain.ParsedRecord) error {
	for _, m := range matches {
		qty, err := locale.ParseNumber(m[2])
		if err != nil {
			return err
		}
		price, err := locale.ParseNumber(m[4])
		if err != nil {
			return err
		}
		net, err := locale.ParseNumber(m[5])
		if err != nil {
			return err
		}
		rate, err := locale.ParseNumber(m[6])
		if err != nil {
			return err
		}
		vat, err := locale.ParseNumber(m[7])
		if err != nil {
			return err
		}
		gross, err := locale.ParseNumber(m[8])
		if err != nil {
			return err
		}
		rec.CostComponents = append(rec.CostComponents, domain.CostComponent{
			Name:        m[1],
			Quantity:    &qty,
			Unit:        ptr(m[3]),
			UnitPrice:   &price,
			VATRate:     &rate,
			NetAmount:   &net,
			VATAmount:   &vat,
			GrossAmount: &gross,
		})
	}
	return nil
}

func appendSectionComponent(name string) Transform {
	return func(matches [][]string, rec *domain.ParsedRecord) error {
		net, err := locale.ParseNumber(matches[0][1])
		if err != nil {
			return err
		}
		vat, err := locale.ParseNumber(matches[0][2])
		if err != nil {
			return err
		}
		gross, err := locale.ParseNumber(matches[0][3])
		if err != nil {
			return err
		}
		rec.CostComponents = append(rec.CostComponents, domain.CostComponent{
			Name:        name,
			NetAmount:   &net,
			VATAmount:   &vat,
			GrossAmount: &gross,
		})
		return nil
	}
}
