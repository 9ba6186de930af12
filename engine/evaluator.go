// api/engine/evaluator.go
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/policyguard/api/model"
)

// Evaluate checks one employee against one normalized rule. It returns a
// human-readable violation description and true when the employee violates
// the rule, or ("", false) when the employee is compliant.
//
// Missing or uncoercible data never produces a violation: if the employee
// lacks the field, the reference column, or holds a non-numeric value in a
// numeric column, the result is "cannot determine, assume compliant". That
// conservative-miss policy keeps malformed rows from aborting a batch at the
// cost of possibly under-reporting.
func Evaluate(emp *model.Employee, rule *NormalizedRule) (string, bool) {
	actual, ok := emp.Field(rule.Field)
	if !ok || actual == nil {
		return "", false
	}

	switch rule.Kind {
	case KindReference:
		refVal, ok := emp.Field(rule.ReferenceColumn)
		if !ok || refVal == nil {
			return "", false
		}
		a, okA := toFloat(actual)
		r, okR := toFloat(refVal)
		if !okA || !okR {
			return "", false
		}
		if !rule.Operator.CompareFloat(a, r) {
			return fmt.Sprintf("%s (%v) is not %s %s (%v)",
				rule.Field, formatNumber(a), rule.Operator, rule.ReferenceColumn, formatNumber(r)), true
		}
		return "", false

	case KindString:
		actualStr := strings.TrimSpace(stringify(actual))
		if !rule.Operator.CompareString(actualStr, rule.StringValue) {
			return fmt.Sprintf("%s is '%s', must be %s '%s'",
				rule.Field, actualStr, rule.Operator, rule.StringValue), true
		}
		return "", false

	case KindInteger:
		f, ok := toFloat(actual)
		if !ok {
			return "", false
		}
		a := int(f)
		if !rule.Operator.CompareInt(a, int(rule.NumericValue)) {
			return fmt.Sprintf("%s (%d) is not %s %s",
				rule.Field, a, rule.Operator, formatNumber(rule.NumericValue)), true
		}
		return "", false

	case KindFloat:
		a, ok := toFloat(actual)
		if !ok {
			return "", false
		}
		if !rule.Operator.CompareFloat(a, rule.NumericValue) {
			return fmt.Sprintf("%s (%s) is not %s %s",
				rule.Field, formatNumber(a), rule.Operator, formatNumber(rule.NumericValue)), true
		}
		return "", false
	}

	return "", false
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}

// stringify renders a field value for string comparison. Booleans use the
// dataset's "True"/"False" spelling so closed-set columns match their
// declared values.
func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		if x {
			return "True"
		}
		return "False"
	default:
		return fmt.Sprintf("%v", x)
	}
}

// formatNumber drops a trailing ".0" so whole thresholds read as integers in
// violation descriptions.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
