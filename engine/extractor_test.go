// api/engine/extractor_test.go
package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policyguard/api/model"
)

func TestExtractWorkingDaysRule(t *testing.T) {
	e := NewExtractor(DefaultRegistry())

	rules := e.Extract("Employees must work at least 20 working days per month.")
	require.Len(t, rules, 1)
	assert.Equal(t, "working_days", rules[0].Field)
	assert.Equal(t, ">= 20", rules[0].Condition)
	assert.Equal(t, model.SeverityHigh, rules[0].Severity)
	assert.Equal(t, SourceRegex, rules[0].Source)
	assert.True(t, rules[0].IsActive)
}

func TestExtractNumberedListOnOneLine(t *testing.T) {
	e := NewExtractor(DefaultRegistry())

	text := "1. Employees must work at least 20 working days per month. 2. Sales targets must be met or exceeded every month."
	rules := e.Extract(text)
	require.Len(t, rules, 2)

	assert.Equal(t, "working_days", rules[0].Field)
	assert.Equal(t, ">= 20", rules[0].Condition)
	assert.NotContains(t, rules[0].Description, "1.")

	assert.Equal(t, "actual_sales", rules[1].Field)
	assert.Equal(t, ">= target_sales", rules[1].Condition)
}

func TestExtractSatisfactionAndCompliance(t *testing.T) {
	e := NewExtractor(DefaultRegistry())

	text := "Customer satisfaction score should be at least 4.5.\nAll employees must adhere to company policy."
	rules := e.Extract(text)
	require.Len(t, rules, 2)

	assert.Equal(t, "customer_satisfaction_score", rules[0].Field)
	assert.Equal(t, ">= 4.5", rules[0].Condition)

	assert.Equal(t, "policy_compliance", rules[1].Field)
	assert.Equal(t, "== 'Yes'", rules[1].Condition)
}

func TestExtractOneRulePerField(t *testing.T) {
	e := NewExtractor(DefaultRegistry())

	text := "Employees must work at least 20 working days per month.\nWorking days must never drop below 15 days per month."
	rules := e.Extract(text)
	require.Len(t, rules, 1)
	// The first statement naming the field claims it.
	assert.Equal(t, ">= 20", rules[0].Condition)
}

func TestExtractSeverityKeywordTiers(t *testing.T) {
	e := NewExtractor(DefaultRegistry())

	tests := []struct {
		text     string
		severity string
	}{
		{"Zero tolerance: employees must work at least 20 working days per month.", model.SeverityCritical},
		{"Employees must work at least 20 working days per month.", model.SeverityHigh},
		{"Employees should work at least 20 working days per month.", model.SeverityMedium},
		{"Advisory: working days of 20 per month are encouraged.", model.SeverityLow},
	}
	for _, tt := range tests {
		rules := e.Extract(tt.text)
		require.Len(t, rules, 1, "text %q", tt.text)
		assert.Equal(t, tt.severity, rules[0].Severity, "text %q", tt.text)
	}
}

func TestExtractHigherTierWinsOverLower(t *testing.T) {
	e := NewExtractor(DefaultRegistry())

	// Both "advisory" and "zero tolerance" appear; the higher tier wins
	// regardless of position.
	rules := e.Extract("This advisory carries zero tolerance: employees must work at least 20 working days per month.")
	require.Len(t, rules, 1)
	assert.Equal(t, model.SeverityCritical, rules[0].Severity)
}

func TestExtractUpperBoundCue(t *testing.T) {
	e := NewExtractor(DefaultRegistry())

	rules := e.Extract("Employees may take no more than 22 working days per month.")
	require.Len(t, rules, 1)
	assert.Equal(t, "<= 22", rules[0].Condition)
}

func TestExtractThresholdPicksLargestNumber(t *testing.T) {
	e := NewExtractor(DefaultRegistry())

	// The ordinal prefix and a stray small number must not become the
	// threshold.
	rules := e.Extract("3. Employees must work at least 20 working days per month.")
	require.Len(t, rules, 1)
	assert.Equal(t, ">= 20", rules[0].Condition)
}

func TestExtractIgnoresIrrelevantText(t *testing.T) {
	e := NewExtractor(DefaultRegistry())

	assert.Empty(t, e.Extract("This handbook describes our company culture and values."))
	assert.Empty(t, e.Extract(""))
	assert.Empty(t, e.Extract("Short."))
}

func TestExtractDeterministic(t *testing.T) {
	e := NewExtractor(DefaultRegistry())

	text := "1. Employees must work at least 20 working days per month. 2. Sales targets must be met or exceeded.\nCustomer satisfaction score must stay above 4.0."
	first := e.Extract(text)
	second := e.Extract(text)
	assert.Equal(t, first, second)
}
