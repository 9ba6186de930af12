// api/audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

// Actions recorded in the audit trail.
const (
	ActionPolicyUploaded   = "policy.uploaded"
	ActionPolicyDeleted    = "policy.deleted"
	ActionRuleCreated      = "rule.created"
	ActionRuleUpdated      = "rule.updated"
	ActionRuleDeleted      = "rule.deleted"
	ActionDatasetImported  = "dataset.imported"
	ActionEmployeeDeleted  = "employee.deleted"
	ActionViolationDeleted = "violation.deleted"
	ActionScanCompleted    = "scan.completed"
	ActionUserRegistered   = "user.registered"
)

type AuditLog struct {
	Timestamp     time.Time       `json:"timestamp"`
	UserID        string          `json:"user_id"`
	Action        string          `json:"action"`
	ResourceID    string          `json:"resource_id"`
	ChangeDetails json.RawMessage `json:"change_details,omitempty"`
}
