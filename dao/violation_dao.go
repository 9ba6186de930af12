// api/dao/violation_dao.go
package dao

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/policyguard/api/audit"
	"github.com/policyguard/api/engine"
	pg_errors "github.com/policyguard/api/errors"
	logger "github.com/policyguard/api/logging"
	"github.com/policyguard/api/model"
)

type ViolationDAO struct {
	DB           *gorm.DB
	AuditService audit.Service
}

func NewViolationDAO(db *gorm.DB, auditService audit.Service) *ViolationDAO {
	return &ViolationDAO{DB: db, AuditService: auditService}
}

// ExistingPairs loads every recorded (employee, rule) pair; the scan engine
// uses the set to suppress re-detection.
func (dao *ViolationDAO) ExistingPairs(ctx context.Context) (engine.PairSet, error) {
	var rows []struct {
		EmployeeID string
		RuleID     string
	}
	if err := dao.DB.WithContext(ctx).Model(&model.Violation{}).
		Select("employee_id", "rule_id").Scan(&rows).Error; err != nil {
		logger.Error("Failed to load existing violation pairs", zap.Error(err))
		return nil, pg_errors.ErrDatabaseOperation
	}

	pairs := make(engine.PairSet, len(rows))
	for _, row := range rows {
		pairs[engine.Pair{EmployeeID: row.EmployeeID, RuleID: row.RuleID}] = struct{}{}
	}
	return pairs, nil
}

// CreateViolations bulk-inserts scan output in a single transaction.
func (dao *ViolationDAO) CreateViolations(ctx context.Context, violations []model.Violation) error {
	if len(violations) == 0 {
		return nil
	}
	if err := dao.DB.WithContext(ctx).Create(&violations).Error; err != nil {
		logger.Error("Failed to insert violations", zap.Error(err), zap.Int("count", len(violations)))
		return pg_errors.ErrDatabaseOperation
	}
	logger.Info("Violations inserted", zap.Int("count", len(violations)))
	return nil
}

func (dao *ViolationDAO) ListViolations(ctx context.Context, criteria model.ViolationSearchCriteria) ([]model.Violation, error) {
	query := dao.DB.WithContext(ctx).Model(&model.Violation{})
	if criteria.EmployeeID != "" {
		query = query.Where("employee_id = ?", criteria.EmployeeID)
	}
	if criteria.RuleID != "" {
		query = query.Where("rule_id = ?", criteria.RuleID)
	}
	if criteria.Severity != "" {
		query = query.Where("severity = ?", criteria.Severity)
	}
	if criteria.Limit > 0 {
		query = query.Limit(criteria.Limit)
	}
	if criteria.Offset > 0 {
		query = query.Offset(criteria.Offset)
	}

	var violations []model.Violation
	if err := query.Order("timestamp desc, id").Find(&violations).Error; err != nil {
		logger.Error("Failed to list violations", zap.Error(err))
		return nil, pg_errors.ErrDatabaseOperation
	}
	return violations, nil
}

func (dao *ViolationDAO) DeleteViolation(ctx context.Context, violationID string, userID string) error {
	result := dao.DB.WithContext(ctx).Delete(&model.Violation{}, "id = ?", violationID)
	if result.Error != nil {
		logger.Error("Failed to delete violation", zap.Error(result.Error), zap.String("violationID", violationID))
		return pg_errors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return pg_errors.ErrViolationNotFound
	}

	if err := dao.AuditService.Record(ctx, audit.Entry(userID, audit.ActionViolationDeleted, violationID, nil)); err != nil {
		logger.Warn("Failed to record violation deletion audit entry", zap.Error(err), zap.String("violationID", violationID))
	}

	logger.Info("Violation deleted", zap.String("violationID", violationID))
	return nil
}

// Summary aggregates violation counts by severity and rule.
func (dao *ViolationDAO) Summary(ctx context.Context) (*model.ViolationSummary, error) {
	summary := &model.ViolationSummary{
		BySeverity: make(map[string]int),
		ByRule:     make(map[string]int),
	}

	var bySeverity []struct {
		Severity string
		Count    int
	}
	if err := dao.DB.WithContext(ctx).Model(&model.Violation{}).
		Select("severity, count(*) as count").Group("severity").Scan(&bySeverity).Error; err != nil {
		logger.Error("Failed to aggregate violations by severity", zap.Error(err))
		return nil, pg_errors.ErrDatabaseOperation
	}
	for _, row := range bySeverity {
		summary.BySeverity[row.Severity] = row.Count
		summary.Total += row.Count
	}

	var byRule []struct {
		RuleID string
		Count  int
	}
	if err := dao.DB.WithContext(ctx).Model(&model.Violation{}).
		Select("rule_id, count(*) as count").Group("rule_id").Scan(&byRule).Error; err != nil {
		logger.Error("Failed to aggregate violations by rule", zap.Error(err))
		return nil, pg_errors.ErrDatabaseOperation
	}
	for _, row := range byRule {
		summary.ByRule[row.RuleID] = row.Count
	}

	return summary, nil
}
