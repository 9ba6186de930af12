// api/engine/tierone_test.go
package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policyguard/api/model"
)

type fakeTierOne struct {
	rules []model.Rule
	err   error
}

func (f *fakeTierOne) ExtractRules(ctx context.Context, text string, columns []string) ([]model.Rule, error) {
	return f.rules, f.err
}

const tierOneText = "Employees must work at least 20 working days per month."

func TestExtractWithFallbackNilTierOne(t *testing.T) {
	e := NewExtractor(DefaultRegistry())

	rules, tier := e.ExtractWithFallback(context.Background(), tierOneText, nil, time.Second)
	assert.Equal(t, SourceRegex, tier)
	require.Len(t, rules, 1)
	assert.Equal(t, SourceRegex, rules[0].Source)
}

func TestExtractWithFallbackTierOneError(t *testing.T) {
	e := NewExtractor(DefaultRegistry())
	tierOne := &fakeTierOne{err: errors.New("quota exceeded")}

	rules, tier := e.ExtractWithFallback(context.Background(), tierOneText, tierOne, time.Second)
	assert.Equal(t, SourceRegex, tier)
	require.Len(t, rules, 1)
	assert.Equal(t, "working_days", rules[0].Field)
}

func TestExtractWithFallbackEmptyTierOne(t *testing.T) {
	e := NewExtractor(DefaultRegistry())
	tierOne := &fakeTierOne{rules: nil}

	_, tier := e.ExtractWithFallback(context.Background(), tierOneText, tierOne, time.Second)
	assert.Equal(t, SourceRegex, tier)
}

func TestExtractWithFallbackMalformedTierOne(t *testing.T) {
	e := NewExtractor(DefaultRegistry())
	// One rule missing its condition poisons the whole payload.
	tierOne := &fakeTierOne{rules: []model.Rule{
		{Field: "working_days", Condition: ">= 20"},
		{Field: "actual_sales", Condition: ""},
	}}

	rules, tier := e.ExtractWithFallback(context.Background(), tierOneText, tierOne, time.Second)
	assert.Equal(t, SourceRegex, tier)
	for _, r := range rules {
		assert.Equal(t, SourceRegex, r.Source)
	}
}

func TestExtractWithFallbackTierOneSuccess(t *testing.T) {
	e := NewExtractor(DefaultRegistry())
	tierOne := &fakeTierOne{rules: []model.Rule{
		{Field: "working_days", Condition: ">= 20", Severity: model.SeverityHigh},
		{Field: "customer_satisfaction_score", Condition: ">= 4.5", Severity: "bogus"},
	}}

	rules, tier := e.ExtractWithFallback(context.Background(), tierOneText, tierOne, time.Second)
	assert.Equal(t, SourceGemini, tier)
	require.Len(t, rules, 2)

	assert.Equal(t, SourceGemini, rules[0].Source)
	assert.True(t, rules[0].IsActive)
	assert.Equal(t, model.SeverityHigh, rules[0].Severity)
	// An unrecognized severity is coerced to the default.
	assert.Equal(t, model.SeverityMedium, rules[1].Severity)
}
