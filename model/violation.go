// api/model/violation.go
package model

import "time"

// Violation records one employee failing one rule. A (employee, rule) pair
// produces at most one violation; the scan engine suppresses repeats and the
// table enforces the same pair uniqueness.
type Violation struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	EmployeeID  string    `json:"employee_id" gorm:"uniqueIndex:idx_violation_pair"`
	RuleID      string    `json:"rule_id" gorm:"uniqueIndex:idx_violation_pair"`
	Description string    `json:"description"`
	Severity    string    `json:"severity"`
	Timestamp   time.Time `json:"timestamp"`
}

// ViolationSummary aggregates violations for the dashboard.
type ViolationSummary struct {
	Total      int            `json:"total"`
	BySeverity map[string]int `json:"by_severity"`
	ByRule     map[string]int `json:"by_rule"`
}

type ViolationSearchCriteria struct {
	EmployeeID string `json:"employee_id,omitempty"`
	RuleID     string `json:"rule_id,omitempty"`
	Severity   string `json:"severity,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Offset     int    `json:"offset,omitempty"`
}
