// api/engine/evaluator_test.go
package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policyguard/api/model"
)

func mustNormalize(t *testing.T, field, condition string) *NormalizedRule {
	t.Helper()
	norm, err := NewNormalizer(DefaultRegistry()).Normalize(model.Rule{Field: field, Condition: condition})
	require.NoError(t, err)
	return norm
}

func TestEvaluateReferenceComparison(t *testing.T) {
	rule := mustNormalize(t, "actual_sales", ">= target_sales")

	behind := &model.Employee{EmployeeID: "E001", ActualSales: 80, TargetSales: 100}
	description, violated := Evaluate(behind, rule)
	assert.True(t, violated)
	assert.Contains(t, description, "80")
	assert.Contains(t, description, "100")
	assert.Contains(t, description, "actual_sales")
	assert.Contains(t, description, "target_sales")

	ahead := &model.Employee{EmployeeID: "E002", ActualSales: 120, TargetSales: 100}
	_, violated = Evaluate(ahead, rule)
	assert.False(t, violated)

	exact := &model.Employee{EmployeeID: "E003", ActualSales: 100, TargetSales: 100}
	_, violated = Evaluate(exact, rule)
	assert.False(t, violated)
}

func TestEvaluateIntegerComparison(t *testing.T) {
	rule := mustNormalize(t, "working_days", ">= 20")

	description, violated := Evaluate(&model.Employee{WorkingDays: 15}, rule)
	assert.True(t, violated)
	assert.Equal(t, "working_days (15) is not >= 20", description)

	_, violated = Evaluate(&model.Employee{WorkingDays: 20}, rule)
	assert.False(t, violated)
}

func TestEvaluateFloatComparison(t *testing.T) {
	rule := mustNormalize(t, "customer_satisfaction_score", ">= 4.5")

	description, violated := Evaluate(&model.Employee{CustomerSatisfactionScore: 3.2}, rule)
	assert.True(t, violated)
	assert.Contains(t, description, "3.2")
	assert.Contains(t, description, "4.5")

	_, violated = Evaluate(&model.Employee{CustomerSatisfactionScore: 4.5}, rule)
	assert.False(t, violated)
}

func TestEvaluateStringComparison(t *testing.T) {
	rule := mustNormalize(t, "policy_compliance", "== 'Yes'")

	description, violated := Evaluate(&model.Employee{PolicyCompliance: "No"}, rule)
	assert.True(t, violated)
	assert.Equal(t, "policy_compliance is 'No', must be == 'Yes'", description)

	_, violated = Evaluate(&model.Employee{PolicyCompliance: "Yes"}, rule)
	assert.False(t, violated)
}

func TestEvaluateBooleanIndicatorColumn(t *testing.T) {
	// The dataset stores indicator columns as booleans; the closed set uses
	// the "True"/"False" spelling.
	rule := mustNormalize(t, "low_working_days", "== 'False'")

	_, violated := Evaluate(&model.Employee{LowWorkingDays: true}, rule)
	assert.True(t, violated)

	_, violated = Evaluate(&model.Employee{LowWorkingDays: false}, rule)
	assert.False(t, violated)
}

func TestEvaluateMissingFieldIsCompliant(t *testing.T) {
	rule := &NormalizedRule{Field: "bonus", Operator: OpGreaterOrEqual, Kind: KindFloat, NumericValue: 10}

	_, violated := Evaluate(&model.Employee{EmployeeID: "E001"}, rule)
	assert.False(t, violated)
}

func TestEvaluateUncoercibleValueIsCompliant(t *testing.T) {
	// A numeric comparison against a non-numeric value cannot be determined,
	// so the employee is treated as compliant.
	rule := &NormalizedRule{Field: "month", Operator: OpGreaterOrEqual, Kind: KindFloat, NumericValue: 10}

	_, violated := Evaluate(&model.Employee{Month: "January"}, rule)
	assert.False(t, violated)
}

func TestEvaluateExtraFieldValue(t *testing.T) {
	rule := &NormalizedRule{Field: "overtime_hours", Operator: OpLessOrEqual, Kind: KindFloat, NumericValue: 10}

	emp := &model.Employee{Extra: map[string]any{"overtime_hours": "14"}}
	description, violated := Evaluate(emp, rule)
	assert.True(t, violated)
	assert.Contains(t, description, "overtime_hours")
}
