package extract

import (
	"strings"

	"rachunki/internal/domain"
)

// deriveFields fills fields that are algebraic functions of already-extracted
// values. It only ever fills fields left absent by the profile; a
// directly-matched field is never overwritten. Per-zone breakdowns are
// retained alongside any aggregate they feed.
func deriveFields(rec *domain.ParsedRecord) {
	deriveConsumption(rec)
	derivePeriod(rec)
	deriveAmounts(rec)
}

func deriveConsumption(rec *domain.ParsedRecord) {
	if rec.ConsumptionKWh == nil && len(rec.MeterReadings) > 0 {
		total := 0.0
		found := false
		for i := range rec.MeterReadings {
			r := &rec.MeterReadings[i]
			if r.Consumption == nil || (r.Unit != "" && r.Unit != "kWh") {
				continue
			}
			total += *r.Consumption
			found = true
		}
		if found {
			rec.ConsumptionKWh = &total
		}
	}

	// Several meters can share a zone; the reading latest in document order
	// wins, matching how the invoices themselves summarize a replaced meter.
	var day, night *float64
	for i := range rec.MeterReadings {
		r := &rec.MeterReadings[i]
		if r.Consumption == nil {
			continue
		}
		switch r.Zone {
		case "dzienna":
			day = r.Consumption
		case "nocna":
			night = r.Consumption
		}
	}
	if rec.ConsumptionDayKWh == nil && day != nil {
		rec.ConsumptionDayKWh = ptr(*day)
	}
	if rec.ConsumptionNightKWh == nil && night != nil {
		rec.ConsumptionNightKWh = ptr(*night)
	}

	// Water invoices with no direct aggregate: sum the delivery line items.
	if rec.ConsumptionValue == nil && rec.UtilityType == domain.UtilityWater {
		total := 0.0
		found := false
		for i := range rec.CostComponents {
			c := &rec.CostComponents[i]
			if c.Quantity == nil || c.Unit == nil || *c.Unit != "m3" {
				continue
			}
			if !isWaterDelivery(c.Name) {
				continue
			}
			total += *c.Quantity
			found = true
		}
		if found {
			rec.ConsumptionValue = &total
			rec.ConsumptionUnit = ptr("m3")
		}
	}

	if rec.ConsumptionValue == nil && rec.ConsumptionKWh != nil {
		rec.ConsumptionValue = ptr(*rec.ConsumptionKWh)
		rec.ConsumptionUnit = ptr("kWh")
	}
}

func isWaterDelivery(name string) bool {
	return strings.HasPrefix(name, "Dostarcza") || strings.HasPrefix(name, "Dostarcze")
}

// derivePeriod computes the billing period as the widest span over component
// periods when no single range was matched directly.
func derivePeriod(rec *domain.ParsedRecord) {
	if rec.PeriodStart != nil || rec.PeriodEnd != nil {
		return
	}
	var minStart, maxEnd string
	for i := range rec.CostComponents {
		c := &rec.CostComponents[i]
		if c.PeriodStart != nil && (minStart == "" || *c.PeriodStart < minStart) {
			minStart = *c.PeriodStart
		}
		if c.PeriodEnd != nil && (maxEnd == "" || *c.PeriodEnd > maxEnd) {
			maxEnd = *c.PeriodEnd
		}
	}
	for i := range rec.MeterReadings {
		r := &rec.MeterReadings[i]
		if r.PeriodStart != nil && (minStart == "" || *r.PeriodStart < minStart) {
			minStart = *r.PeriodStart
		}
		if r.PeriodEnd != nil && (maxEnd == "" || *r.PeriodEnd > maxEnd) {
			maxEnd = *r.PeriodEnd
		}
	}
	if minStart != "" {
		rec.PeriodStart = &minStart
	}
	if maxEnd != "" {
		rec.PeriodEnd = &maxEnd
	}
}

func deriveAmounts(rec *domain.ParsedRecord) {
	if rec.AmountToPay == nil && rec.CostGross != nil {
		rec.AmountToPay = ptr(*rec.CostGross)
	}
}
