// api/model/policy.go
package model

import "time"

// PolicyDocument is an uploaded policy file and the text extracted from it.
// Rules reference their originating document through PolicyID.
type PolicyDocument struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	Filename       string    `json:"filename"`
	SizeBytes      int64     `json:"size_bytes"`
	ExtractedText  string    `json:"extracted_text,omitempty"`
	ExtractionTier string    `json:"extraction_tier"` // "gemini" or "regex"
	RuleCount      int       `json:"rule_count"`
	UploadedBy     string    `json:"uploaded_by"`
	UploadedAt     time.Time `json:"uploaded_at"`
}
