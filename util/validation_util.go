// api/util/validation_util.go

package util

import (
	"fmt"
	"strings"

	"github.com/policyguard/api/engine"
	"github.com/policyguard/api/model"
)

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

func (v *ValidationUtil) ValidateRule(rule model.Rule) error {
	if rule.Description == "" {
		return fmt.Errorf("rule description cannot be empty")
	}
	if rule.Field == "" {
		return fmt.Errorf("rule field cannot be empty")
	}
	if rule.Condition == "" {
		return fmt.Errorf("rule condition cannot be empty")
	}
	if !model.ValidSeverity(rule.Severity) {
		return fmt.Errorf("rule severity must be one of Low, Medium, High, Critical")
	}
	if _, _, ok := engine.ParseOperator(strings.TrimSpace(rule.Condition)); !ok {
		return fmt.Errorf("rule condition must start with a comparison operator")
	}
	return nil
}

func (v *ValidationUtil) ValidateUser(user model.User) error {
	if user.Username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if user.PasswordHash == "" {
		return fmt.Errorf("user password hash cannot be empty")
	}
	return nil
}

func (v *ValidationUtil) ValidateCredentials(creds model.Credentials) error {
	if creds.Username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if len(creds.Password) < 4 {
		return fmt.Errorf("password must be at least 4 characters")
	}
	return nil
}

func (v *ValidationUtil) ValidateEmployee(employee model.Employee) error {
	if employee.EmployeeID == "" {
		return fmt.Errorf("employee ID cannot be empty")
	}
	if employee.WorkingDays < 0 {
		return fmt.Errorf("working days cannot be negative")
	}
	if employee.TargetSales < 0 || employee.ActualSales < 0 {
		return fmt.Errorf("sales figures cannot be negative")
	}
	return nil
}
