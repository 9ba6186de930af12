// api/engine/normalizer_test.go
package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policyguard/api/model"
)

func TestNormalizeNumericRules(t *testing.T) {
	n := NewNormalizer(DefaultRegistry())

	norm, err := n.Normalize(model.Rule{Field: "working_days", Condition: ">= 20"})
	require.NoError(t, err)
	assert.Equal(t, KindInteger, norm.Kind)
	assert.Equal(t, OpGreaterOrEqual, norm.Operator)
	assert.Equal(t, float64(20), norm.NumericValue)

	norm, err = n.Normalize(model.Rule{Field: "customer_satisfaction_score", Condition: ">= 4.5"})
	require.NoError(t, err)
	assert.Equal(t, KindFloat, norm.Kind)
	assert.Equal(t, 4.5, norm.NumericValue)
}

func TestNormalizeTruncatesIntegerThreshold(t *testing.T) {
	n := NewNormalizer(DefaultRegistry())

	norm, err := n.Normalize(model.Rule{Field: "working_days", Condition: ">= 20.9"})
	require.NoError(t, err)
	assert.Equal(t, float64(20), norm.NumericValue)
}

func TestNormalizeStringAliases(t *testing.T) {
	n := NewNormalizer(DefaultRegistry())

	tests := []struct {
		condition string
		want      string
	}{
		{"== 'Yes'", "Yes"},
		{"== 'compliant'", "Yes"},
		{"== 'TRUE'", "Yes"},
		{"== 'no'", "No"},
		{"== 'non-compliant'", "No"},
		// Unrecognized spellings pass through and simply never match.
		{"== 'partial'", "partial"},
	}
	for _, tt := range tests {
		norm, err := n.Normalize(model.Rule{Field: "policy_compliance", Condition: tt.condition})
		require.NoError(t, err, "condition %q", tt.condition)
		assert.Equal(t, KindString, norm.Kind)
		assert.Equal(t, tt.want, norm.StringValue, "condition %q", tt.condition)
	}
}

func TestNormalizeReferenceColumn(t *testing.T) {
	n := NewNormalizer(DefaultRegistry())

	for _, condition := range []string{
		">= target_sales",
		">= Target_Sales",
		">= target sales",
		">= target",
	} {
		norm, err := n.Normalize(model.Rule{Field: "actual_sales", Condition: condition})
		require.NoError(t, err, "condition %q", condition)
		assert.Equal(t, KindReference, norm.Kind)
		assert.Equal(t, "target_sales", norm.ReferenceColumn)
	}
}

func TestNormalizeReferenceFallsBackToLiteral(t *testing.T) {
	n := NewNormalizer(DefaultRegistry())

	norm, err := n.Normalize(model.Rule{Field: "actual_sales", Condition: ">= 100"})
	require.NoError(t, err)
	assert.Equal(t, KindFloat, norm.Kind)
	assert.Equal(t, float64(100), norm.NumericValue)
	assert.Empty(t, norm.ReferenceColumn)
}

func TestNormalizeRejections(t *testing.T) {
	n := NewNormalizer(DefaultRegistry())

	tests := []struct {
		name   string
		rule   model.Rule
		reason string
	}{
		{"unknown column", model.Rule{Field: "bonus", Condition: ">= 10"}, "unknown column"},
		{"empty condition", model.Rule{Field: "working_days", Condition: ""}, "empty condition"},
		{"no operator", model.Rule{Field: "working_days", Condition: "20"}, "no comparison operator"},
		{"disallowed operator", model.Rule{Field: "low_working_days", Condition: "< 5"}, "operator < not allowed on column"},
		{"non-numeric operand", model.Rule{Field: "working_days", Condition: ">= twenty"}, "operand is not numeric"},
		{"bad reference operand", model.Rule{Field: "actual_sales", Condition: ">= quota"}, "operand is neither the reference column nor a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			norm, err := n.Normalize(tt.rule)
			assert.Nil(t, norm)
			var rej *RejectionError
			require.ErrorAs(t, err, &rej)
			assert.Equal(t, tt.reason, rej.Reason)
		})
	}
}
