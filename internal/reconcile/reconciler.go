package reconcile

import (
	"rachunki/internal/domain"
)

// Reconciler compares rule-based extraction results against an independent
// reading of the same document.
type Reconciler struct {
	costTolerance        float64
	consumptionTolerance float64
}

// NewReconciler creates a reconciler with the given tolerances, in zł for
// monetary fields and in consumption units for quantity fields.
func NewReconciler(costTolerance, consumptionTolerance float64) *Reconciler {
	return &Reconciler{
		costTolerance:        costTolerance,
		consumptionTolerance: consumptionTolerance,
	}
}

// Compare produces a discrepancy report for one document. Fields are checked
// in a fixed order so reports are stable across runs.
func (r *Reconciler) Compare(doc domain.SourceDocument, rec *domain.ParsedRecord, cross *domain.CrossExtraction) *domain.DiscrepancyReport {
	report := &domain.DiscrepancyReport{
		Document: doc.Name,
		Provider: doc.Provider,
	}

	var m3 *float64
	if rec.ConsumptionValue != nil && rec.ConsumptionUnit != nil && *rec.ConsumptionUnit == "m3" {
		m3 = rec.ConsumptionValue
	}

	checks := []*domain.Discrepancy{
		CompareNumeric("amount_to_pay", rec.AmountToPay, cross.AmountToPay, r.costTolerance),
		CompareNumeric("cost_gross_total", rec.CostGross, cross.CostGrossTotal, r.costTolerance),
		CompareNumeric("consumption_kwh", rec.ConsumptionKWh, cross.ConsumptionKWh, r.consumptionTolerance),
		CompareNumeric("consumption_m3", m3, cross.ConsumptionM3, r.consumptionTolerance),
	}
	for _, d := range checks {
		if d != nil {
			report.Discrepancies = append(report.Discrepancies, *d)
		}
	}
	return report
}
