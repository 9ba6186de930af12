// api/util/validation_util_test.go

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/policyguard/api/model"
)

func TestValidateRule(t *testing.T) {
	v := NewValidationUtil()

	valid := model.Rule{
		Description: "Employees must work at least 20 days",
		Field:       "working_days",
		Condition:   ">= 20",
		Severity:    "High",
	}
	assert.NoError(t, v.ValidateRule(valid))

	cases := []struct {
		name   string
		mutate func(r *model.Rule)
	}{
		{"empty description", func(r *model.Rule) { r.Description = "" }},
		{"empty field", func(r *model.Rule) { r.Field = "" }},
		{"empty condition", func(r *model.Rule) { r.Condition = "" }},
		{"bad severity", func(r *model.Rule) { r.Severity = "urgent" }},
		{"condition without operator", func(r *model.Rule) { r.Condition = "20 days" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rule := valid
			tc.mutate(&rule)
			assert.Error(t, v.ValidateRule(rule))
		})
	}
}

func TestValidateCredentials(t *testing.T) {
	v := NewValidationUtil()

	assert.NoError(t, v.ValidateCredentials(model.Credentials{Username: "alice", Password: "s3cret"}))
	assert.Error(t, v.ValidateCredentials(model.Credentials{Username: "", Password: "s3cret"}))
	assert.Error(t, v.ValidateCredentials(model.Credentials{Username: "alice", Password: "abc"}))
}

func TestValidateEmployee(t *testing.T) {
	v := NewValidationUtil()

	assert.NoError(t, v.ValidateEmployee(model.Employee{EmployeeID: "E001", WorkingDays: 22}))
	assert.Error(t, v.ValidateEmployee(model.Employee{EmployeeID: ""}))
	assert.Error(t, v.ValidateEmployee(model.Employee{EmployeeID: "E001", WorkingDays: -1}))
	assert.Error(t, v.ValidateEmployee(model.Employee{EmployeeID: "E001", TargetSales: -5}))
}
