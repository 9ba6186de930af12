// api/dao/rule_dao.go
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/policyguard/api/audit"
	pg_errors "github.com/policyguard/api/errors"
	logger "github.com/policyguard/api/logging"
	"github.com/policyguard/api/model"
)

type RuleDAO struct {
	DB           *gorm.DB
	AuditService audit.Service
}

func NewRuleDAO(db *gorm.DB, auditService audit.Service) *RuleDAO {
	return &RuleDAO{DB: db, AuditService: auditService}
}

// CreateRule inserts a single rule, generating an ID when absent.
func (dao *RuleDAO) CreateRule(ctx context.Context, rule model.Rule, userID string) (string, error) {
	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	rule.CreatedAt = time.Now()
	rule.UpdatedAt = time.Now()

	if err := dao.DB.WithContext(ctx).Create(&rule).Error; err != nil {
		logger.Error("Failed to create rule", zap.Error(err), zap.String("field", rule.Field))
		return "", pg_errors.ErrDatabaseOperation
	}

	if err := dao.AuditService.Record(ctx, audit.Entry(userID, audit.ActionRuleCreated, rule.ID, rule)); err != nil {
		logger.Warn("Failed to record rule creation audit entry", zap.Error(err), zap.String("ruleID", rule.ID))
	}

	logger.Info("Rule created", zap.String("ruleID", rule.ID), zap.String("field", rule.Field))
	return rule.ID, nil
}

// CreateRules inserts a batch of rules in one transaction, typically the
// output of one policy extraction.
func (dao *RuleDAO) CreateRules(ctx context.Context, rules []model.Rule, userID string) ([]string, error) {
	if len(rules) == 0 {
		return nil, nil
	}

	now := time.Now()
	ids := make([]string, len(rules))
	for i := range rules {
		if rules[i].ID == "" {
			rules[i].ID = uuid.New().String()
		}
		rules[i].CreatedAt = now
		rules[i].UpdatedAt = now
		ids[i] = rules[i].ID
	}

	if err := dao.DB.WithContext(ctx).Create(&rules).Error; err != nil {
		logger.Error("Failed to create rules batch", zap.Error(err), zap.Int("count", len(rules)))
		return nil, pg_errors.ErrDatabaseOperation
	}

	for _, rule := range rules {
		if err := dao.AuditService.Record(ctx, audit.Entry(userID, audit.ActionRuleCreated, rule.ID, rule)); err != nil {
			logger.Warn("Failed to record rule creation audit entry", zap.Error(err), zap.String("ruleID", rule.ID))
		}
	}

	logger.Info("Rules batch created", zap.Int("count", len(rules)))
	return ids, nil
}

func (dao *RuleDAO) GetRule(ctx context.Context, ruleID string) (*model.Rule, error) {
	var rule model.Rule
	err := dao.DB.WithContext(ctx).First(&rule, "id = ?", ruleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pg_errors.ErrRuleNotFound
	}
	if err != nil {
		logger.Error("Failed to get rule", zap.Error(err), zap.String("ruleID", ruleID))
		return nil, pg_errors.ErrDatabaseOperation
	}
	return &rule, nil
}

func (dao *RuleDAO) UpdateRule(ctx context.Context, rule model.Rule, userID string) (*model.Rule, error) {
	existing, err := dao.GetRule(ctx, rule.ID)
	if err != nil {
		return nil, err
	}

	rule.CreatedAt = existing.CreatedAt
	rule.UpdatedAt = time.Now()
	if err := dao.DB.WithContext(ctx).Save(&rule).Error; err != nil {
		logger.Error("Failed to update rule", zap.Error(err), zap.String("ruleID", rule.ID))
		return nil, pg_errors.ErrDatabaseOperation
	}

	if err := dao.AuditService.Record(ctx, audit.Entry(userID, audit.ActionRuleUpdated, rule.ID, rule)); err != nil {
		logger.Warn("Failed to record rule update audit entry", zap.Error(err), zap.String("ruleID", rule.ID))
	}

	logger.Info("Rule updated", zap.String("ruleID", rule.ID))
	return &rule, nil
}

func (dao *RuleDAO) DeleteRule(ctx context.Context, ruleID string, userID string) error {
	result := dao.DB.WithContext(ctx).Delete(&model.Rule{}, "id = ?", ruleID)
	if result.Error != nil {
		logger.Error("Failed to delete rule", zap.Error(result.Error), zap.String("ruleID", ruleID))
		return pg_errors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return pg_errors.ErrRuleNotFound
	}

	if err := dao.AuditService.Record(ctx, audit.Entry(userID, audit.ActionRuleDeleted, ruleID, nil)); err != nil {
		logger.Warn("Failed to record rule deletion audit entry", zap.Error(err), zap.String("ruleID", ruleID))
	}

	logger.Info("Rule deleted", zap.String("ruleID", ruleID))
	return nil
}

func (dao *RuleDAO) ListRules(ctx context.Context, criteria model.RuleSearchCriteria) ([]model.Rule, error) {
	query := dao.DB.WithContext(ctx).Model(&model.Rule{})
	if criteria.Field != "" {
		query = query.Where("field = ?", criteria.Field)
	}
	if criteria.Severity != "" {
		query = query.Where("severity = ?", criteria.Severity)
	}
	if criteria.Active != nil {
		query = query.Where("is_active = ?", *criteria.Active)
	}
	if criteria.PolicyID != "" {
		query = query.Where("policy_id = ?", criteria.PolicyID)
	}
	if criteria.Limit > 0 {
		query = query.Limit(criteria.Limit)
	}
	if criteria.Offset > 0 {
		query = query.Offset(criteria.Offset)
	}

	var rules []model.Rule
	if err := query.Order("created_at, id").Find(&rules).Error; err != nil {
		logger.Error("Failed to list rules", zap.Error(err))
		return nil, pg_errors.ErrDatabaseOperation
	}
	return rules, nil
}

// ListActiveRules returns every active rule, the scan engine's input.
func (dao *RuleDAO) ListActiveRules(ctx context.Context) ([]model.Rule, error) {
	var rules []model.Rule
	if err := dao.DB.WithContext(ctx).Where("is_active = ?", true).Order("created_at, id").Find(&rules).Error; err != nil {
		logger.Error("Failed to list active rules", zap.Error(err))
		return nil, pg_errors.ErrDatabaseOperation
	}
	return rules, nil
}

// SetActive flips the activation flag on a rule.
func (dao *RuleDAO) SetActive(ctx context.Context, ruleID string, active bool, userID string) error {
	result := dao.DB.WithContext(ctx).Model(&model.Rule{}).
		Where("id = ?", ruleID).
		Updates(map[string]any{"is_active": active, "updated_at": time.Now()})
	if result.Error != nil {
		logger.Error("Failed to set rule activation", zap.Error(result.Error), zap.String("ruleID", ruleID))
		return pg_errors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return pg_errors.ErrRuleNotFound
	}

	if err := dao.AuditService.Record(ctx, audit.Entry(userID, audit.ActionRuleUpdated, ruleID,
		map[string]bool{"is_active": active})); err != nil {
		logger.Warn("Failed to record rule activation audit entry", zap.Error(err), zap.String("ruleID", ruleID))
	}
	return nil
}
