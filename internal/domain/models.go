package domain

import "time"

// SourceDocument describes one document enumerated from a document source.
// The raw bytes and text extraction live behind the storage ports; the core
// only sees the listing metadata and, later, the extracted text.
type SourceDocument struct {
	Name     string
	Path     string
	Provider Provider
	Size     int64
	ModTime  time.Time
}

// ParsedRecord is the typed output of rule-based extraction plus derived
// fields. Optional fields use pointers: nil means the field was genuinely
// absent or no rule matched — never a placeholder value.
type ParsedRecord struct {
	Provider    Provider     `json:"provider"`
	UtilityType UtilityType  `json:"utility_type"`
	DocType     DocumentType `json:"doc_type"`

	DocNumber      *string `json:"doc_number"`
	IssueDate      *string `json:"issue_date"`
	DueDate        *string `json:"due_date"`
	Location       *string `json:"location"`
	CustomerNumber *string `json:"customer_number"`
	AccountNumber  *string `json:"account_number"`
	MeterNumber    *string `json:"meter_number"`
	TariffGroup    *string `json:"tariff_group"`
	Product        *string `json:"product"`

	PeriodStart *string `json:"period_start"`
	PeriodEnd   *string `json:"period_end"`

	ConsumptionValue    *float64 `json:"consumption_value"`
	ConsumptionUnit     *string  `json:"consumption_unit"`
	ConsumptionKWh      *float64 `json:"consumption_kwh"`
	ConsumptionDayKWh   *float64 `json:"consumption_day_kwh"`
	ConsumptionNightKWh *float64 `json:"consumption_night_kwh"`

	MeterReadingStart *float64 `json:"meter_reading_start"`
	MeterReadingEnd   *float64 `json:"meter_reading_end"`

	CostNet     *float64 `json:"cost_net"`
	CostVAT     *float64 `json:"cost_vat"`
	CostGross   *float64 `json:"cost_gross"`
	AmountToPay *float64 `json:"amount_to_pay"`

	IsEstimate   bool `json:"is_estimate"`
	IsCorrection bool `json:"is_correction"`

	// Year-over-year comparison printed on settlement invoices.
	CurrentPeriodKWh *float64 `json:"current_period_kwh"`
	PreviousYearKWh  *float64 `json:"previous_year_kwh"`

	MeterReadings  []MeterReading  `json:"meter_readings"`
	CostComponents []CostComponent `json:"cost_components"`

	// Unmatched lists field names whose rule chains produced no match.
	// Distinct from fields the profile never declares.
	Unmatched []string `json:"unmatched,omitempty"`
}

// MeterReading is one meter row from a settlement's detail section. Dual-zone
// tariffs produce one reading per zone for the same meter.
type MeterReading struct {
	MeterNumber  string   `json:"meter_number"`
	Zone         string   `json:"zone"`
	PeriodStart  *string  `json:"period_start"`
	PeriodEnd    *string  `json:"period_end"`
	ReadingStart *float64 `json:"reading_start"`
	ReadingEnd   *float64 `json:"reading_end"`
	ReadingType  string   `json:"reading_type"`
	Consumption  *float64 `json:"consumption"`
	Unit         string   `json:"unit"`
}

// CostComponent is one itemized cost line. Only the name is mandatory.
type CostComponent struct {
	Name        string   `json:"name"`
	Quantity    *float64 `json:"quantity"`
	Unit        *string  `json:"unit"`
	UnitPrice   *float64 `json:"unit_price"`
	VATRate     *float64 `json:"vat_rate"`
	NetAmount   *float64 `json:"net_amount"`
	VATAmount   *float64 `json:"vat_amount"`
	GrossAmount *float64 `json:"gross_amount"`
	PeriodStart *string  `json:"period_start"`
	PeriodEnd   *string  `json:"period_end"`
	Zone        *string  `json:"zone"`
}

// QuantityConsistent reports whether quantity × unit price approximates the
// net amount within tol. Used as a sanity signal only; values are never
// auto-corrected. Returns true when any of the three inputs is absent.
func (c *CostComponent) QuantityConsistent(tol float64) bool {
	if c.Quantity == nil || c.UnitPrice == nil || c.NetAmount == nil {
		return true
	}
	diff := *c.Quantity**c.UnitPrice - *c.NetAmount
	if diff < 0 {
		diff = -diff
	}
	return diff <= tol
}

// ReadabilityVerdict is the readability gate's decision for one document.
type ReadabilityVerdict struct {
	Usable bool
	Hits   int
}

// CrossExtraction is the constrained field subset an AI cross-extractor
// returns: monetary totals and consumption quantities only.
type CrossExtraction struct {
	AmountToPay    *float64 `json:"amount_to_pay"`
	CostGrossTotal *float64 `json:"cost_gross_total"`
	ConsumptionKWh *float64 `json:"consumption_kwh"`
	ConsumptionM3  *float64 `json:"consumption_m3"`
}

// Discrepancy is one per-field mismatch between rule-based and AI extraction.
type Discrepancy struct {
	Field             string  `json:"field"`
	RuleValue         string  `json:"rule_value"`
	AIValue           string  `json:"ai_value"`
	Delta             float64 `json:"delta"`
	ExceededTolerance bool    `json:"exceeded_tolerance"`
}

// DiscrepancyReport is the ordered list of mismatches for one document.
// An empty report means the document reconciled cleanly.
type DiscrepancyReport struct {
	Document      string        `json:"document"`
	Provider      Provider      `json:"provider"`
	Discrepancies []Discrepancy `json:"discrepancies"`
}

// Clean reports whether no discrepancies were found.
func (r *DiscrepancyReport) Clean() bool {
	return len(r.Discrepancies) == 0
}

// AuditSummary aggregates one reconciliation run. Issues holds only the
// reports that found discrepancies; clean and skipped documents appear in the
// counters alone.
type AuditSummary struct {
	Checked int                 `json:"checked"`
	OK      int                 `json:"ok"`
	Issues  int                 `json:"issues"`
	Skipped int                 `json:"skipped"`
	Cached  int                 `json:"cached"`
	Reports []DiscrepancyReport `json:"reports"`
}

// DocumentOutcome records what happened to a single document during a batch
// run. Failures are contained per document; the batch always continues.
type DocumentOutcome struct {
	Document string        `json:"document"`
	Provider Provider      `json:"provider"`
	Status   OutcomeStatus `json:"status"`
	Reason   string        `json:"reason,omitempty"`
}

// BatchSummary aggregates outcomes of one batch run.
type BatchSummary struct {
	Processed int               `json:"processed"`
	Skipped   int               `json:"skipped"`
	Failed    int               `json:"failed"`
	Outcomes  []DocumentOutcome `json:"outcomes"`
}

// Add appends an outcome and bumps the matching counter.
func (s *BatchSummary) Add(o DocumentOutcome) {
	switch o.Status {
	case OutcomeProcessed:
		s.Processed++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
	s.Outcomes = append(s.Outcomes, o)
}
