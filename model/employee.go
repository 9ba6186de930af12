// api/model/employee.go
package model

import "time"

// Employee is one row of the imported workforce dataset. The named columns
// are the canonical evaluable fields; anything else from the CSV lands in
// Extra so an import never silently drops data.
type Employee struct {
	ID                        string         `json:"id" gorm:"primaryKey"`
	EmployeeID                string         `json:"employee_id" gorm:"uniqueIndex"`
	Name                      string         `json:"name"`
	WorkingDays               int            `json:"working_days"`
	TargetSales               int            `json:"target_sales"`
	ActualSales               int            `json:"actual_sales"`
	CustomerSatisfactionScore float64        `json:"customer_satisfaction_score"`
	PolicyCompliance          string         `json:"policy_compliance"`
	LowWorkingDays            bool           `json:"low_working_days"`
	TargetNotMet              bool           `json:"target_not_met"`
	LowCustomerSatisfaction   bool           `json:"low_customer_satisfaction"`
	NonComplianceReason       string         `json:"non_compliance_reason"`
	Month                     string         `json:"month"`
	Extra                     map[string]any `json:"extra,omitempty" gorm:"serializer:json"`
	CreatedAt                 time.Time      `json:"created_at"`
	UpdatedAt                 time.Time      `json:"updated_at"`
}

// Field returns the value of a canonical column by name, falling back to the
// Extra payload. The second return reports whether the employee carries the
// field at all; evaluation treats a missing field as compliant.
func (e *Employee) Field(name string) (any, bool) {
	switch name {
	case "employee_id":
		return e.EmployeeID, true
	case "name":
		return e.Name, true
	case "working_days":
		return e.WorkingDays, true
	case "target_sales":
		return e.TargetSales, true
	case "actual_sales":
		return e.ActualSales, true
	case "customer_satisfaction_score":
		return e.CustomerSatisfactionScore, true
	case "policy_compliance":
		return e.PolicyCompliance, true
	case "low_working_days":
		return e.LowWorkingDays, true
	case "target_not_met":
		return e.TargetNotMet, true
	case "low_customer_satisfaction":
		return e.LowCustomerSatisfaction, true
	case "non_compliance_reason":
		return e.NonComplianceReason, true
	case "month":
		return e.Month, true
	}
	if e.Extra != nil {
		v, ok := e.Extra[name]
		return v, ok
	}
	return nil, false
}

type EmployeeSearchCriteria struct {
	EmployeeID string `json:"employee_id,omitempty"`
	Name       string `json:"name,omitempty"`
	Month      string `json:"month,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Offset     int    `json:"offset,omitempty"`
}

// ImportSummary describes the outcome of one CSV dataset import.
type ImportSummary struct {
	RecordsImported   int `json:"records_imported"`
	DuplicatesSkipped int `json:"duplicates_skipped"`
	TotalProcessed    int `json:"total_processed"`
}
