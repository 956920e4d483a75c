package locale

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"rachunki/internal/domain"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"dotted four-digit year", "05.03.2024", "2024-03-05"},
		{"dashed four-digit year", "12-04-2024", "2024-04-12"},
		{"two-digit year adds 2000", "05.03.26", "2026-03-05"},
		{"dashed two-digit year", "01-12-25", "2025-12-01"},
		{"surrounding whitespace", " 28.02.2023 ", "2023-02-28"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.token)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDateMalformed(t *testing.T) {
	tokens := []string{
		"",
		"2024",
		"05/03/2024",
		"32.01.2024",
		"05.13.2024",
		"05.03.1850",
		"ab.cd.efgh",
	}
	for _, token := range tokens {
		_, err := ParseDate(token)
		assert.Error(t, err, "token %q", token)
		assert.True(t, errors.Is(err, domain.ErrMalformedDate))
	}
}
