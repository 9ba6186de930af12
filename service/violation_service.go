// api/service/violation_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/policyguard/api/dao"
	pg_errors "github.com/policyguard/api/errors"
	logger "github.com/policyguard/api/logging"
	"github.com/policyguard/api/model"
	"github.com/policyguard/api/util"
)

// IViolationService exposes recorded violations and the dashboard summary.
type IViolationService interface {
	ListViolations(ctx context.Context, criteria model.ViolationSearchCriteria) ([]model.Violation, error)
	Summary(ctx context.Context) (*model.ViolationSummary, error)
	DeleteViolation(ctx context.Context, violationID string, userID string) error
}

type ViolationService struct {
	violationDAO *dao.ViolationDAO
	cacheService *util.CacheService
	eventBus     *util.EventBus
}

var _ IViolationService = (*ViolationService)(nil)

func NewViolationService(violationDAO *dao.ViolationDAO, cacheService *util.CacheService, eventBus *util.EventBus) *ViolationService {
	return &ViolationService{
		violationDAO: violationDAO,
		cacheService: cacheService,
		eventBus:     eventBus,
	}
}

// ListViolations retrieves violations matching the given criteria
func (s *ViolationService) ListViolations(ctx context.Context, criteria model.ViolationSearchCriteria) ([]model.Violation, error) {
	violations, err := s.violationDAO.ListViolations(ctx, criteria)
	if err != nil {
		logger.Error("Error listing violations", zap.Error(err), zap.Any("criteria", criteria))
		return nil, fmt.Errorf("failed to list violations: %w", err)
	}
	return violations, nil
}

// Summary returns aggregate violation counts, served from cache when fresh
func (s *ViolationService) Summary(ctx context.Context) (*model.ViolationSummary, error) {
	// Try to get from cache first
	cached, err := s.cacheService.GetViolationSummary(ctx)
	if err == nil && cached != nil {
		return cached, nil
	}

	summary, err := s.violationDAO.Summary(ctx)
	if err != nil {
		logger.Error("Error computing violation summary", zap.Error(err))
		return nil, pg_errors.ErrInternalServer
	}

	// Update cache
	if err := s.cacheService.SetViolationSummary(ctx, *summary); err != nil {
		logger.Warn("Failed to cache violation summary", zap.Error(err))
	}

	return summary, nil
}

// DeleteViolation removes a recorded violation
func (s *ViolationService) DeleteViolation(ctx context.Context, violationID string, userID string) error {
	if err := s.violationDAO.DeleteViolation(ctx, violationID, userID); err != nil {
		if errors.Is(err, pg_errors.ErrViolationNotFound) {
			return err
		}
		logger.Error("Error deleting violation", zap.Error(err), zap.String("violationID", violationID), zap.String("userID", userID))
		return fmt.Errorf("failed to delete violation: %w", err)
	}

	// The summary no longer reflects the table.
	if err := s.cacheService.InvalidateViolationSummary(ctx); err != nil {
		logger.Warn("Failed to invalidate violation summary cache", zap.Error(err))
	}

	return nil
}
