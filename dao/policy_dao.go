// api/dao/policy_dao.go
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

type PolicyDAO struct {
	DB           *gorm.DB
	AuditService audit.Service
}

func NewPolicyDAO(db *gorm.DB, auditService audit.Service) *PolicyDAO {
	return &PolicyDAO{DB: db, AuditService: auditService}
}

func (dao *PolicyDAO) CreatePolicy(ctx context.Context, policy model.PolicyDocument, userID string) (string, error) {
	if policy.ID == "" {
		policy.ID = uuid.New().String()
	}
	policy.UploadedBy = userID
	policy.UploadedAt = time.Now()

	if err := dao.DB.WithContext(ctx).Create(&policy).Error; err != nil {
		logger.Error("Failed to create policy document", zap.Error(err), zap.String("filename", policy.Filename))
		return "", pg_errors.ErrDatabaseOperation
	}

	if err := dao.AuditService.Record(ctx, audit.Entry(userID, audit.ActionPolicyUploaded, policy.ID,
		map[string]any{"filename": policy.Filename, "rule_count": policy.RuleCount, "tier": policy.ExtractionTier})); err != nil {
		logger.Warn("Failed to record policy upload audit entry", zap.Error(err), zap.String("policyID", policy.ID))
	}

	logger.Info("Policy document created",
		zap.String("policyID", policy.ID),
		zap.String("filename", policy.Filename),
		zap.Int("ruleCount", policy.RuleCount))
	return policy.ID, nil
}

func (dao *PolicyDAO) GetPolicy(ctx context.Context, policyID string) (*model.PolicyDocument, error) {
	var policy model.PolicyDocument
	err := dao.DB.WithContext(ctx).First(&policy, "id = ?", policyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pg_errors.ErrPolicyNotFound
	}
	if err != nil {
		logger.Error("Failed to get policy document", zap.Error(err), zap.String("policyID", policyID))
		return nil, pg_errors.ErrDatabaseOperation
	}
	return &policy, nil
}

func (dao *PolicyDAO) ListPolicies(ctx context.Context, limit, offset int) ([]model.PolicyDocument, error) {
	query := dao.DB.WithContext(ctx).Model(&model.PolicyDocument{}).
		Omit("extracted_text").Order("uploaded_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var policies []model.PolicyDocument
	if err := query.Find(&policies).Error; err != nil {
		logger.Error("Failed to list policy documents", zap.Error(err))
		return nil, pg_errors.ErrDatabaseOperation
	}
	return policies, nil
}

// DeletePolicy removes a document and its extracted rules together.
func (dao *PolicyDAO) DeletePolicy(ctx context.Context, policyID string, userID string) error {
	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.PolicyDocument{}, "id = ?", policyID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return pg_errors.ErrPolicyNotFound
		}
		return tx.Delete(&model.Rule{}, "policy_id = ?", policyID).Error
	})
	if errors.Is(err, pg_errors.ErrPolicyNotFound) {
		return err
	}
	if err != nil {
		logger.Error("Failed to delete policy document", zap.Error(err), zap.String("policyID", policyID))
		return pg_errors.ErrDatabaseOperation
	}

	if err := dao.AuditService.Record(ctx, audit.Entry(userID, audit.ActionPolicyDeleted, policyID, nil)); err != nil {
		logger.Warn("Failed to record policy deletion audit entry", zap.Error(err), zap.String("policyID", policyID))
	}

	logger.Info("Policy document deleted", zap.String("policyID", policyID))
	return nil
}
