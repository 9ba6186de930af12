// api/engine/normalizer.go
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/policyguard/api/model"
)

// NormalizedRule is a rule that has been validated against the registry and
// is safe to evaluate directly: the field exists, the operator is legal on
// it, and exactly one of the typed value or the reference column is set.
type NormalizedRule struct {
	Field           string
	Operator        Operator
	Kind            ColumnKind
	ReferenceColumn string  // set only for reference comparisons
	NumericValue    float64 // KindInteger (pre-truncated) and KindFloat
	StringValue     string  // KindString
}

// RejectionError explains why a rule could not be normalized. Rejections are
// diagnostics, not faults: a rejected rule is excluded from evaluation and
// the rest of the batch proceeds.
type RejectionError struct {
	Field     string
	Condition string
	Reason    string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("rule on %q with condition %q rejected: %s", e.Field, e.Condition, e.Reason)
}

// Aliases the Tier-1 extractor tends to emit for closed-set compliance
// columns, mapped onto the positive/negative canonical values.
var (
	positiveAliases = map[string]bool{
		"yes": true, "true": true, "compliant": true, "1": true, "comply": true, "adhered": true,
	}
	negativeAliases = map[string]bool{
		"no": true, "false": true, "0": true, "non-compliant": true, "not compliant": true,
	}
)

// Normalizer validates raw rules against a column registry.
type Normalizer struct {
	registry *Registry
}

func NewNormalizer(registry *Registry) *Normalizer {
	return &Normalizer{registry: registry}
}

// Normalize validates one rule and coerces its condition to the column's
// declared kind. On any failure it returns a *RejectionError.
//
// For closed-set string columns an operand that matches no known alias is
// passed through unchanged: such a rule normalizes successfully but can
// never match at evaluation time. That masked-rule behavior is deliberate;
// an unrecognized spelling should silence the rule, not abort the batch.
func (n *Normalizer) Normalize(rule model.Rule) (*NormalizedRule, error) {
	field := strings.TrimSpace(rule.Field)
	condition := strings.TrimSpace(rule.Condition)

	column, ok := n.registry.Lookup(field)
	if !ok {
		return nil, &RejectionError{Field: field, Condition: condition, Reason: "unknown column"}
	}
	if condition == "" {
		return nil, &RejectionError{Field: field, Condition: condition, Reason: "empty condition"}
	}

	op, rest, ok := ParseOperator(condition)
	if !ok {
		return nil, &RejectionError{Field: field, Condition: condition, Reason: "no comparison operator"}
	}
	if !column.AllowsOperator(op) {
		return nil, &RejectionError{Field: field, Condition: condition,
			Reason: fmt.Sprintf("operator %s not allowed on column", op)}
	}

	operand := strings.Trim(rest, `'"`)

	switch column.Kind {
	case KindString:
		return &NormalizedRule{
			Field:       field,
			Operator:    op,
			Kind:        KindString,
			StringValue: canonicalStringValue(column, operand),
		}, nil

	case KindReference:
		if matchesReferenceColumn(operand, column.ReferenceColumn) {
			return &NormalizedRule{
				Field:           field,
				Operator:        op,
				Kind:            KindReference,
				ReferenceColumn: column.ReferenceColumn,
			}, nil
		}
		// The extractor may have produced a literal threshold instead of a
		// column reference; degrade to a plain float comparison.
		v, err := strconv.ParseFloat(operand, 64)
		if err != nil {
			return nil, &RejectionError{Field: field, Condition: condition,
				Reason: "operand is neither the reference column nor a number"}
		}
		return &NormalizedRule{Field: field, Operator: op, Kind: KindFloat, NumericValue: v}, nil

	case KindInteger:
		v, err := strconv.ParseFloat(operand, 64)
		if err != nil {
			return nil, &RejectionError{Field: field, Condition: condition, Reason: "operand is not numeric"}
		}
		return &NormalizedRule{Field: field, Operator: op, Kind: KindInteger, NumericValue: float64(int(v))}, nil

	case KindFloat:
		v, err := strconv.ParseFloat(operand, 64)
		if err != nil {
			return nil, &RejectionError{Field: field, Condition: condition, Reason: "operand is not numeric"}
		}
		return &NormalizedRule{Field: field, Operator: op, Kind: KindFloat, NumericValue: v}, nil
	}

	return nil, &RejectionError{Field: field, Condition: condition, Reason: "unsupported column kind"}
}

// canonicalStringValue maps truthy/compliance aliases onto the canonical
// values of a two-value closed set. Anything unrecognized passes through.
func canonicalStringValue(column ColumnDescriptor, operand string) string {
	if len(column.AllowedValues) != 2 {
		return operand
	}
	switch lower := strings.ToLower(operand); {
	case positiveAliases[lower]:
		return column.AllowedValues[0]
	case negativeAliases[lower]:
		return column.AllowedValues[1]
	}
	return operand
}

// matchesReferenceColumn accepts the spellings extractors use for a
// reference column: exact name, case folded, underscores as spaces, or the
// literal word "target".
func matchesReferenceColumn(operand, refColumn string) bool {
	lower := strings.ToLower(strings.TrimSpace(operand))
	if lower == "" {
		return false
	}
	ref := strings.ToLower(refColumn)
	if lower == ref || lower == strings.ReplaceAll(ref, "_", " ") || lower == "target" {
		return true
	}
	return strings.ReplaceAll(lower, " ", "_") == ref
}
