package reconcile

import (
	"math"
	"strconv"
	"strings"

	"rachunki/internal/domain"
)

const absentValue = "missing"

// CompareNumeric applies the comparison policy for a numeric field and
// returns a discrepancy, or nil when the values agree.
//
// A field absent on both sides agrees. A field the rules missed but the
// second reading found is flagged, since it suggests a gap in the rule set.
// A field only the rules found is not flagged, the second reading is
// advisory. Present on both sides, the values must agree within tolerance.
func CompareNumeric(field string, ruleVal, aiVal *float64, tolerance float64) *domain.Discrepancy {
	if aiVal == nil {
		return nil
	}
	if ruleVal == nil {
		return &domain.Discrepancy{
			Field:     field,
			RuleValue: absentValue,
			AIValue:   formatAmount(*aiVal),
		}
	}
	delta := math.Abs(*ruleVal - *aiVal)
	if delta > tolerance {
		return &domain.Discrepancy{
			Field:             field,
			RuleValue:         formatAmount(*ruleVal),
			AIValue:           formatAmount(*aiVal),
			Delta:             delta,
			ExceededTolerance: true,
		}
	}
	return nil
}

// CompareText applies the comparison policy for a text field. Values are
// compared case-insensitively with surrounding whitespace ignored.
func CompareText(field string, ruleVal, aiVal *string) *domain.Discrepancy {
	if aiVal == nil {
		return nil
	}
	if ruleVal == nil {
		return &domain.Discrepancy{
			Field:     field,
			RuleValue: absentValue,
			AIValue:   strings.TrimSpace(*aiVal),
		}
	}
	a := strings.ToLower(strings.TrimSpace(*ruleVal))
	b := strings.ToLower(strings.TrimSpace(*aiVal))
	if a != b {
		return &domain.Discrepancy{
			Field:             field,
			RuleValue:         strings.TrimSpace(*ruleVal),
			AIValue:           strings.TrimSpace(*aiVal),
			ExceededTolerance: true,
		}
	}
	return nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
