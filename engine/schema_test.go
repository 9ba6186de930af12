// api/engine/schema_test.go
package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOperator(t *testing.T) {
	tests := []struct {
		input    string
		op       Operator
		rest     string
		ok       bool
	}{
		{">= 20", OpGreaterOrEqual, "20", true},
		{"<= 4.5", OpLessOrEqual, "4.5", true},
		{"> 10", OpGreaterThan, "10", true},
		{"< 10", OpLessThan, "10", true},
		{"== 'Yes'", OpEqual, "'Yes'", true},
		{"!= 'No'", OpNotEqual, "'No'", true},
		{"  >=20  ", OpGreaterOrEqual, "20", true},
		{"20", 0, "", false},
		{"", 0, "", false},
		{"target_sales >= ", 0, "", false},
	}

	for _, tt := range tests {
		op, rest, ok := ParseOperator(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		if tt.ok {
			assert.Equal(t, tt.op, op, "input %q", tt.input)
			assert.Equal(t, tt.rest, rest, "input %q", tt.input)
		}
	}
}

func TestParseOperatorPrefersLongestToken(t *testing.T) {
	// ">=" must never parse as ">" followed by "= 20".
	op, rest, ok := ParseOperator(">= 20")
	assert.True(t, ok)
	assert.Equal(t, OpGreaterOrEqual, op)
	assert.Equal(t, "20", rest)
}

func TestOperatorCompare(t *testing.T) {
	assert.True(t, OpGreaterOrEqual.CompareInt(20, 20))
	assert.False(t, OpGreaterOrEqual.CompareInt(19, 20))
	assert.True(t, OpLessThan.CompareFloat(4.4, 4.5))
	assert.False(t, OpLessThan.CompareFloat(4.5, 4.5))
	assert.True(t, OpEqual.CompareString("Yes", "Yes"))
	assert.False(t, OpNotEqual.CompareString("Yes", "Yes"))

	// Ordering operators never succeed on strings.
	assert.False(t, OpGreaterThan.CompareString("b", "a"))
}

func TestDefaultRegistry(t *testing.T) {
	registry := DefaultRegistry()

	workingDays, ok := registry.Lookup("working_days")
	assert.True(t, ok)
	assert.Equal(t, KindInteger, workingDays.Kind)
	assert.True(t, workingDays.AllowsOperator(OpGreaterOrEqual))

	actualSales, ok := registry.Lookup("actual_sales")
	assert.True(t, ok)
	assert.Equal(t, KindReference, actualSales.Kind)
	assert.Equal(t, "target_sales", actualSales.ReferenceColumn)

	compliance, ok := registry.Lookup("policy_compliance")
	assert.True(t, ok)
	assert.Equal(t, KindString, compliance.Kind)
	assert.True(t, compliance.AllowsOperator(OpEqual))
	assert.False(t, compliance.AllowsOperator(OpGreaterThan))
	assert.Equal(t, []string{"Yes", "No"}, compliance.AllowedValues)

	indicator, ok := registry.Lookup("low_working_days")
	assert.True(t, ok)
	assert.False(t, indicator.AllowsOperator(OpNotEqual))

	_, ok = registry.Lookup("bonus")
	assert.False(t, ok)
}

func TestRegistryColumnNamesOrder(t *testing.T) {
	registry := DefaultRegistry()
	names := registry.ColumnNames()
	assert.Equal(t, "working_days", names[0])
	assert.Equal(t, "target_sales", names[1])
	assert.Len(t, names, 8)

	// The returned slice is a copy; mutating it must not corrupt the registry.
	names[0] = "mutated"
	assert.Equal(t, "working_days", registry.ColumnNames()[0])
}
