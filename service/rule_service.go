// api/service/rule_service.go
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

// IRuleService handles manual rule management alongside extracted rules.
type IRuleService interface {
	CreateRule(ctx context.Context, rule model.Rule, userID string) (*model.Rule, error)
	GetRule(ctx context.Context, ruleID string) (*model.Rule, error)
	UpdateRule(ctx context.Context, rule model.Rule, userID string) (*model.Rule, error)
	DeleteRule(ctx context.Context, ruleID string, userID string) error
	ListRules(ctx context.Context, criteria model.RuleSearchCriteria) ([]model.Rule, error)
	SetActive(ctx context.Context, ruleID string, active bool, userID string) (*model.Rule, error)
}

type RuleService struct {
	ruleDAO         *dao.RuleDAO
	validationUtil  *util.ValidationUtil
	cacheService    *util.CacheService
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
}

var _ IRuleService = (*RuleService)(nil)

func NewRuleService(
	ruleDAO *dao.RuleDAO,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) *RuleService {
	service := &RuleService{
		ruleDAO:         ruleDAO,
		validationUtil:  validationUtil,
		cacheService:    cacheService,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
	}

	// Set up event subscriptions
	eventBus.Subscribe("rule.created", service.handleRuleCreated)
	eventBus.Subscribe("rule.deleted", service.handleRuleDeleted)

	return service
}

func (s *RuleService) handleRuleCreated(ctx context.Context, event util.Event) error {
	rule, ok := event.Payload.(model.Rule)
	if !ok {
		logger.Error("Invalid event payload type", zap.Any("payload", event.Payload))
		return fmt.Errorf("invalid event payload type: %T", event.Payload)
	}

	logger.Info("Rule created event received", zap.String("ruleID", rule.ID))

	if err := s.notificationSvc.NotifyRuleChange(ctx, "created", rule); err != nil {
		logger.Warn("Failed to send rule creation notification", zap.Error(err), zap.String("ruleID", rule.ID))
	}
	return nil
}

func (s *RuleService) handleRuleDeleted(ctx context.Context, event util.Event) error {
	ruleID, ok := event.Payload.(string)
	if !ok {
		logger.Error("Invalid event payload type", zap.Any("payload", event.Payload))
		return fmt.Errorf("invalid event payload type: %T", event.Payload)
	}

	logger.Info("Rule deleted event received", zap.String("ruleID", ruleID))

	if err := s.notificationSvc.NotifyRuleChange(ctx, "deleted", model.Rule{ID: ruleID}); err != nil {
		logger.Warn("Failed to send rule deletion notification", zap.Error(err), zap.String("ruleID", ruleID))
	}
	return nil
}

// CreateRule handles the creation of a manually authored rule
func (s *RuleService) CreateRule(ctx context.Context, rule model.Rule, userID string) (*model.Rule, error) {
	if err := s.validationUtil.ValidateRule(rule); err != nil {
		return nil, fmt.Errorf("%w: %v", pg_errors.ErrInvalidRuleData, err)
	}

	rule.Source = "manual"
	rule.IsActive = true

	ruleID, err := s.ruleDAO.CreateRule(ctx, rule, userID)
	if err != nil {
		logger.Error("Error creating rule", zap.Error(err), zap.String("userID", userID))
		return nil, err
	}
	rule.ID = ruleID

	// Update cache
	if err := s.cacheService.SetRule(ctx, rule); err != nil {
		logger.Warn("Failed to cache rule", zap.Error(err), zap.String("ruleID", ruleID))
	}

	// Publish event for asynchronous processing
	s.eventBus.Publish(ctx, "rule.created", rule)

	logger.Info("Rule created successfully", zap.String("ruleID", ruleID), zap.String("userID", userID))
	return &rule, nil
}

// GetRule retrieves a rule by its ID
func (s *RuleService) GetRule(ctx context.Context, ruleID string) (*model.Rule, error) {
	// Try to get from cache first
	cachedRule, err := s.cacheService.GetRule(ctx, ruleID)
	if err == nil && cachedRule != nil {
		return cachedRule, nil
	}

	rule, err := s.ruleDAO.GetRule(ctx, ruleID)
	if err != nil {
		if errors.Is(err, pg_errors.ErrRuleNotFound) {
			return nil, pg_errors.ErrRuleNotFound
		}
		logger.Error("Error retrieving rule", zap.Error(err), zap.String("ruleID", ruleID))
		return nil, pg_errors.ErrInternalServer
	}

	// Update cache
	if err := s.cacheService.SetRule(ctx, *rule); err != nil {
		logger.Warn("Failed to cache rule", zap.Error(err), zap.String("ruleID", ruleID))
	}

	return rule, nil
}

// UpdateRule handles updates to an existing rule
func (s *RuleService) UpdateRule(ctx context.Context, rule model.Rule, userID string) (*model.Rule, error) {
	if err := s.validationUtil.ValidateRule(rule); err != nil {
		return nil, fmt.Errorf("%w: %v", pg_errors.ErrInvalidRuleData, err)
	}

	existing, err := s.ruleDAO.GetRule(ctx, rule.ID)
	if err != nil {
		return nil, err
	}
	// Provenance is fixed at creation.
	rule.Source = existing.Source
	rule.PolicyID = existing.PolicyID

	updatedRule, err := s.ruleDAO.UpdateRule(ctx, rule, userID)
	if err != nil {
		logger.Error("Error updating rule", zap.Error(err), zap.String("ruleID", rule.ID), zap.String("userID", userID))
		return nil, err
	}

	// Update cache
	if err := s.cacheService.SetRule(ctx, *updatedRule); err != nil {
		logger.Warn("Failed to update rule in cache", zap.Error(err), zap.String("ruleID", rule.ID))
	}

	logger.Info("Rule updated successfully", zap.String("ruleID", rule.ID), zap.String("userID", userID))
	return updatedRule, nil
}

// DeleteRule handles the deletion of a rule
func (s *RuleService) DeleteRule(ctx context.Context, ruleID string, userID string) error {
	if err := s.ruleDAO.DeleteRule(ctx, ruleID, userID); err != nil {
		if errors.Is(err, pg_errors.ErrRuleNotFound) {
			return err
		}
		logger.Error("Error deleting rule", zap.Error(err), zap.String("ruleID", ruleID), zap.String("userID", userID))
		return fmt.Errorf("failed to delete rule: %w", err)
	}

	// Remove from cache
	if err := s.cacheService.DeleteRule(ctx, ruleID); err != nil {
		logger.Warn("Failed to delete rule from cache", zap.Error(err), zap.String("ruleID", ruleID))
	}

	// Publish event for asynchronous processing
	s.eventBus.Publish(ctx, "rule.deleted", ruleID)

	logger.Info("Rule deleted successfully", zap.String("ruleID", ruleID), zap.String("userID", userID))
	return nil
}

// ListRules retrieves rules matching the given criteria
func (s *RuleService) ListRules(ctx context.Context, criteria model.RuleSearchCriteria) ([]model.Rule, error) {
	rules, err := s.ruleDAO.ListRules(ctx, criteria)
	if err != nil {
		logger.Error("Error listing rules", zap.Error(err), zap.Any("criteria", criteria))
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	return rules, nil
}

// SetActive toggles whether a rule participates in compliance scans
func (s *RuleService) SetActive(ctx context.Context, ruleID string, active bool, userID string) (*model.Rule, error) {
	if err := s.ruleDAO.SetActive(ctx, ruleID, active, userID); err != nil {
		return nil, err
	}

	rule, err := s.ruleDAO.GetRule(ctx, ruleID)
	if err != nil {
		return nil, err
	}

	// Update cache
	if err := s.cacheService.SetRule(ctx, *rule); err != nil {
		logger.Warn("Failed to update rule in cache", zap.Error(err), zap.String("ruleID", ruleID))
	}

	logger.Info("Rule activation changed",
		zap.String("ruleID", ruleID),
		zap.Bool("active", active),
		zap.String("userID", userID))
	return rule, nil
}
