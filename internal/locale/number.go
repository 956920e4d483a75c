// Package locale is the single point of conversion from Polish-locale
// numeric and date tokens to canonical values. No other package parses
// numbers or dates out of document text directly.
package locale

import (
	"fmt"
	"strconv"
	"strings"

	"rachunki/internal/domain"
)

// ParseNumber converts a Polish-formatted numeric token to a float64.
// Thousands may be grouped with regular or non-breaking spaces and the
// decimal separator may be a comma: "1 234,56" -> 1234.56. Plain
// dot-decimal input is accepted unchanged.
func ParseNumber(token string) (float64, error) {
	s := strings.TrimSpace(token)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return 0, fmt.Errorf("%w: empty token", domain.ErrMalformedNumber)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrMalformedNumber, token)
	}
	return v, nil
}
