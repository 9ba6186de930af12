// api/model/rule.go
package model

import "time"

// Severity levels a rule can carry, lowest to highest.
const (
	SeverityLow      = "Low"
	SeverityMedium   = "Medium"
	SeverityHigh     = "High"
	SeverityCritical = "Critical"
)

// ValidSeverity reports whether s is one of the four severity tiers.
func ValidSeverity(s string) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Rule is a compliance rule as extracted from a policy document. Field and
// Condition are free-form until the rule passes through the normalizer; a
// rule that cannot be normalized is skipped at scan time, never evaluated.
type Rule struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	PolicyID    string    `json:"policy_id,omitempty" gorm:"index"`
	Description string    `json:"description"`
	Field       string    `json:"field"`
	Condition   string    `json:"condition"`
	Severity    string    `json:"severity"`
	Source      string    `json:"source"` // "gemini" or "regex"
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RuleSearchCriteria struct {
	Field    string `json:"field,omitempty"`
	Severity string `json:"severity,omitempty"`
	Active   *bool  `json:"active,omitempty"`
	PolicyID string `json:"policy_id,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}
