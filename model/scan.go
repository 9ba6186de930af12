// api/model/scan.go
package model

// RejectedRule explains why a stored rule was skipped during a scan.
type RejectedRule struct {
	Field     string `json:"field"`
	Condition string `json:"condition"`
	Reason    string `json:"reason"`
}

// ScanReport is the outcome of one compliance scan run.
type ScanReport struct {
	NewViolations  int            `json:"new_violations"`
	RulesUsed      int            `json:"rules_used"`
	RulesRejected  []RejectedRule `json:"rules_rejected,omitempty"`
	EmployeesTotal int            `json:"employees_total"`
	Violations     []Violation    `json:"violations"`
}
