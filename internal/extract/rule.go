// Package extract implements rule-based field extraction from utility
// document text. Each provider declares an ordered profile of field rules;
// layout variants are additions to a rule chain, not code edits.
package extract

import (
	"regexp"
	"strings"

	"rachunki/internal/domain"
	"rachunki/internal/locale"
)

// Transform maps the captured groups of a successful match onto the record.
// For single-match rules matches has exactly one element; for All rules it
// holds every non-overlapping match in document order.
type Transform func(matches [][]string, rec *domain.ParsedRecord) error

// Rule attempts to extract one named output field. Rules sharing a Field
// form an ordered fallback chain: the first rule whose pattern matches wins
// and later variants are not tried.
type Rule struct {
	// Field is the output field this rule feeds. Chains are encoded by
	// declaring several rules with the same Field in most-common-first order.
	Field string

	// Pattern is the match attempted against the document text (or the
	// section substring when Section is set).
	Pattern *regexp.Regexp

	// Section optionally isolates a labeled substring; Pattern then applies
	// only within it. Resolves ambiguity when the same label ("Razem")
	// appears in more than one part of the document.
	Section *regexp.Regexp

	// All collects every non-overlapping match instead of the first one.
	// Used for repeating structures: meter readings, cost lines, repeated
	// due-amount occurrences.
	All bool

	Apply Transform
}

// Profile is the complete ordered rule set for one provider/document-type.
type Profile struct {
	Provider domain.Provider
	DocType  domain.DocumentType
	Rules    []Rule
}

func re(pattern string) *regexp.Regexp {
	return regexp.MustCompile(pattern)
}

// setString builds a transform assigning capture group 1 as a trimmed string.
func setString(assign func(*domain.ParsedRecord, string)) Transform {
	return func(matches [][]string, rec *domain.ParsedRecord) error {
		assign(rec, trim(matches[0][1]))
		return nil
	}
}

// setNumber builds a transform parsing capture group 1 as a locale number.
func setNumber(assign func(*domain.ParsedRecord, float64)) Transform {
	return func(matches [][]string, rec *domain.ParsedRecord) error {
		v, err := locale.ParseNumber(matches[0][1])
		if err != nil {
			return err
		}
		assign(rec, v)
		return nil
	}
}

// setDate builds a transform parsing capture group 1 as a locale date.
func setDate(assign func(*domain.ParsedRecord, string)) Transform {
	return func(matches [][]string, rec *domain.ParsedRecord) error {
		iso, err := locale.ParseDate(matches[0][1])
		if err != nil {
			return err
		}
		assign(rec, iso)
		return nil
	}
}

// setPeriod builds a transform parsing capture groups 1 and 2 as the billing
// period start and end dates.
func setPeriod() Transform {
	return func(matches [][]string, rec *domain.ParsedRecord) error {
		start, err := locale.ParseDate(matches[0][1])
		if err != nil {
			return err
		}
		end, err := locale.ParseDate(matches[0][2])
		if err != nil {
			return err
		}
		rec.PeriodStart = &start
		rec.PeriodEnd = &end
		return nil
	}
}

// setTotals builds a transform parsing capture groups 1..3 as net, VAT and
// gross totals.
func setTotals() Transform {
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
		rec.CostNet = &net
		rec.CostVAT = &vat
		rec.CostGross = &gross
		return nil
	}
}

// setMaxAmount builds a transform for repeated amount-due occurrences. It
// keeps the maximum: interim payments erode a running total, so the largest
// occurrence is the original invoice total. Intended for All rules.
func setMaxAmount(assign func(*domain.ParsedRecord, float64)) Transform {
	return func(matches [][]string, rec *domain.ParsedRecord) error {
		var best float64
		found := false
		for _, m := range matches {
			v, err := locale.ParseNumber(m[1])
			if err != nil {
				return err
			}
			if !found || v > best {
				best = v
				found = true
			}
		}
		if !found {
			return domain.ErrMalformedNumber
		}
		assign(rec, best)
		return nil
	}
}

func trim(s string) string { return strings.TrimSpace(s) }

func ptr[T any](v T) *T { return &v }
