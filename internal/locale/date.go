package locale

import (
	"fmt"
	"strconv"
	"strings"

	"rachunki/internal/domain"
)

// ParseDate converts a day-month-year date token to ISO 8601 (YYYY-MM-DD).
// Accepted delimiters are "." and "-"; the year may be two or four digits.
// Two-digit years are normalized by adding 2000, so "05.03.26" -> "2026-03-05".
func ParseDate(token string) (string, error) {
	s := strings.TrimSpace(token)
	var parts []string
	switch {
	case strings.Contains(s, "."):
		parts = strings.Split(s, ".")
	case strings.Contains(s, "-"):
		parts = strings.Split(s, "-")
	}
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: %q", domain.ErrMalformedDate, token)
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil || day < 1 || day > 31 {
		return "", fmt.Errorf("%w: %q", domain.ErrMalformedDate, token)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return "", fmt.Errorf("%w: %q", domain.ErrMalformedDate, token)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil || year < 0 {
		return "", fmt.Errorf("%w: %q", domain.ErrMalformedDate, token)
	}
	if len(parts[2]) <= 2 {
		year += 2000
	}
	if year < 1900 || year > 2200 {
		return "", fmt.Errorf("%w: %q", domain.ErrMalformedDate, token)
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
}
