package extract

import (
	"errors"
	"fmt"
	"log"

	"rachunki/internal/domain"
)

// Classifier decides the document type for a provider from raw text.
type Classifier func(text string) domain.DocumentType

type profileKey struct {
	provider domain.Provider
	docType  domain.DocumentType
}

// Engine applies provider profiles to raw document text.
type Engine struct {
	profiles    map[profileKey]*Profile
	classifiers map[domain.Provider]Classifier
}

// NewEngine creates an engine with all built-in provider profiles registered.
func NewEngine() *Engine {
	e := &Engine{
		profiles:    make(map[profileKey]*Profile),
		classifiers: make(map[domain.Provider]Classifier),
	}
	e.RegisterClassifier(domain.ProviderEON, classifyEON)
	e.RegisterClassifier(domain.ProviderPGNiG, classifyPGNiG)
	e.RegisterClassifier(domain.ProviderMPWiK, classifyMPWiK)
	e.RegisterProfile(eonSettlementProfile())
	e.RegisterProfile(eonForecastProfile())
	e.RegisterProfile(pgnigProfile())
	e.RegisterProfile(mpwikProfile())
	e.RegisterProfile(mpwikCorrectionProfile())
	return e
}

// RegisterProfile adds or replaces the profile for its provider/doc-type.
func (e *Engine) RegisterProfile(p *Profile) {
	e.profiles[profileKey{p.Provider, p.DocType}] = p
}

// RegisterClassifier sets the document-type classifier for a provider.
func (e *Engine) RegisterClassifier(p domain.Provider, c Classifier) {
	e.classifiers[p] = c
}

// Extract runs the matching profile against text and returns the record with
// derived fields filled in. An individual unmatched field is never an error;
// it is listed in the record's Unmatched set. The only failure is
// domain.ErrProfileNotFound for an unknown provider/document-type.
func (e *Engine) Extract(provider domain.Provider, text string) (*domain.ParsedRecord, error) {
	docType := domain.DocTypeSettlement
	if classify, ok := e.classifiers[provider]; ok {
		docType = classify(text)
	}

	p, ok := e.profiles[profileKey{provider, docType}]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrProfileNotFound, provider, docType)
	}

	rec := &domain.ParsedRecord{
		Provider:     provider,
		UtilityType:  domain.UtilityFor[provider],
		DocType:      docType,
		IsEstimate:   docType.IsEstimate(),
		IsCorrection: docType == domain.DocTypeCorrection,
	}

	applyProfile(p, text, rec)
	deriveFields(rec)
	return rec, nil
}

// applyProfile evaluates rules in declaration order with per-field
// first-match-wins. A rule whose transform fails downgrades its field to
// absent: later variants are not tried, because the token was present but
// malformed rather than laid out differently.
func applyProfile(p *Profile, text string, rec *domain.ParsedRecord) {
	settled := make(map[string]bool)
	matched := make(map[string]bool)
	var order []string

	for i := range p.Rules {
		rule := &p.Rules[i]
		if !settled[rule.Field] {
			if !contains(order, rule.Field) {
				order = append(order, rule.Field)
			}
		}
		if settled[rule.Field] {
			continue
		}

		scope := text
		if rule.Section != nil {
			sec := rule.Section.FindStringSubmatch(text)
			if sec == nil {
				continue
			}
			if len(sec) > 1 {
				scope = sec[1]
			} else {
				scope = sec[0]
			}
		}

		var matches [][]string
		if rule.All {
			matches = rule.Pattern.FindAllStringSubmatch(scope, -1)
		} else if m := rule.Pattern.FindStringSubmatch(scope); m != nil {
			matches = [][]string{m}
		}
		if len(matches) == 0 {
			continue
		}

		if err := rule.Apply(matches, rec); err != nil {
			if errors.Is(err, domain.ErrMalformedNumber) || errors.Is(err, domain.ErrMalformedDate) {
				log.Printf("extract: %s/%s field %q downgraded to absent: %v",
					rec.Provider, rec.DocType, rule.Field, err)
				settled[rule.Field] = true
				continue
			}
			log.Printf("extract: %s/%s field %q transform failed: %v",
				rec.Provider, rec.DocType, rule.Field, err)
			settled[rule.Field] = true
			continue
		}
		settled[rule.Field] = true
		matched[rule.Field] = true
	}

	for _, f := range order {
		if !matched[f] {
			rec.Unmatched = append(rec.Unmatched, f)
		}
	}
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
