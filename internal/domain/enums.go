package domain

// Provider identifies a utility company whose documents share a layout family.
type Provider string

const (
	ProviderEON     Provider = "eon"
	ProviderPGNiG   Provider = "pgnig"
	ProviderMPWiK   Provider = "mpwik"
	ProviderUnknown Provider = "unknown"
)

// UtilityType is the kind of utility a document bills for.
type UtilityType string

const (
	UtilityElectricity UtilityType = "electricity"
	UtilityGas         UtilityType = "gas"
	UtilityWater       UtilityType = "water"
)

// UtilityFor maps a provider to the utility it supplies.
var UtilityFor = map[Provider]UtilityType{
	ProviderEON:   UtilityElectricity,
	ProviderPGNiG: UtilityGas,
	ProviderMPWiK: UtilityWater,
}

// DocumentType classifies a source document.
type DocumentType string

const (
	DocTypeSettlement DocumentType = "faktura_rozliczeniowa"
	DocTypeForecast   DocumentType = "prognoza"
	DocTypeCorrection DocumentType = "faktura_korygujaca"
	DocTypeInterest   DocumentType = "nota_odsetkowa"
	DocTypePayment    DocumentType = "wplata"
	DocTypeUnknown    DocumentType = "unknown"
)

// IsEstimate reports whether a document type represents forecast pre-billing
// rather than settled actual usage.
func (t DocumentType) IsEstimate() bool {
	return t == DocTypeForecast
}

// OutcomeStatus is the per-document result of a batch run.
type OutcomeStatus string

const (
	OutcomeProcessed OutcomeStatus = "processed"
	OutcomeSkipped   OutcomeStatus = "skipped"
	OutcomeFailed    OutcomeStatus = "failed"
)
