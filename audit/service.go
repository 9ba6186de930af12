// api/audit/service.go
package audit

import (
	"context"
	"encoding/json"
	"time"
)

type Service interface {
	Record(ctx context.Context, log AuditLog) error
	QueryLogs(ctx context.Context, from, to time.Time, userID, resourceID string) ([]AuditLog, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, log AuditLog) error {
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now().UTC()
	}
	return s.repo.Record(ctx, log)
}

func (s *service) QueryLogs(ctx context.Context, from, to time.Time, userID, resourceID string) ([]AuditLog, error) {
	return s.repo.QueryLogs(ctx, from, to, userID, resourceID)
}

// Entry builds an AuditLog with marshaled change details. Marshal failures
// degrade to an entry without details rather than dropping the record.
func Entry(userID, action, resourceID string, details any) AuditLog {
	log := AuditLog{
		Timestamp:  time.Now().UTC(),
		UserID:     userID,
		Action:     action,
		ResourceID: resourceID,
	}
	if details != nil {
		if data, err := json.Marshal(details); err == nil {
			log.ChangeDetails = data
		}
	}
	return log
}
