// api/service/policy_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/policyguard/api/dao"
	"github.com/policyguard/api/engine"
	pg_errors "github.com/policyguard/api/errors"
	logger "github.com/policyguard/api/logging"
	"github.com/policyguard/api/model"
	"github.com/policyguard/api/util"
)

// IPolicyService handles policy document uploads and lifecycle. Uploading a
// document extracts compliance rules from its text and persists both.
type IPolicyService interface {
	UploadPolicy(ctx context.Context, filename string, data []byte, userID string) (*model.PolicyDocument, []model.Rule, error)
	GetPolicy(ctx context.Context, policyID string) (*model.PolicyDocument, error)
	ListPolicies(ctx context.Context, limit, offset int) ([]model.PolicyDocument, error)
	DeletePolicy(ctx context.Context, policyID string, userID string) error
}

// maxUploadSize caps policy uploads at 10 MB.
const maxUploadSize = 10 << 20

type PolicyService struct {
	policyDAO       *dao.PolicyDAO
	ruleDAO         *dao.RuleDAO
	extractor       *engine.Extractor
	tierOne         engine.TierOneExtractor
	validationUtil  *util.ValidationUtil
	cacheService    *util.CacheService
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
}

var _ IPolicyService = (*PolicyService)(nil)

func NewPolicyService(
	policyDAO *dao.PolicyDAO,
	ruleDAO *dao.RuleDAO,
	extractor *engine.Extractor,
	tierOne engine.TierOneExtractor,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) *PolicyService {
	service := &PolicyService{
		policyDAO:       policyDAO,
		ruleDAO:         ruleDAO,
		extractor:       extractor,
		tierOne:         tierOne,
		validationUtil:  validationUtil,
		cacheService:    cacheService,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
	}

	// Set up event subscriptions
	eventBus.Subscribe("rules.extracted", service.handleRulesExtracted)

	return service
}

func (s *PolicyService) handleRulesExtracted(ctx context.Context, event util.Event) error {
	policy, ok := event.Payload.(model.PolicyDocument)
	if !ok {
		logger.Error("Invalid event payload type", zap.Any("payload", event.Payload))
		return fmt.Errorf("invalid event payload type: %T", event.Payload)
	}

	logger.Info("Rules extracted event received",
		zap.String("policyID", policy.ID),
		zap.Int("ruleCount", policy.RuleCount))

	if err := s.notificationSvc.NotifyRulesExtracted(ctx, policy, policy.RuleCount); err != nil {
		logger.Warn("Failed to send rules extracted notification", zap.Error(err), zap.String("policyID", policy.ID))
	}

	return nil
}

// UploadPolicy stores a policy document, extracts rules from its text and
// persists them. Gemini extraction is attempted first when configured; the
// regex extractor is the fallback, so an upload never fails on the LLM path.
func (s *PolicyService) UploadPolicy(ctx context.Context, filename string, data []byte, userID string) (*model.PolicyDocument, []model.Rule, error) {
	if len(data) == 0 || len(data) > maxUploadSize {
		return nil, nil, pg_errors.ErrInvalidPolicyFile
	}

	text, err := util.ExtractDocumentText(filename, data)
	if err != nil {
		logger.Error("Failed to extract document text", zap.Error(err), zap.String("filename", filename))
		return nil, nil, pg_errors.ErrInvalidPolicyFile
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil, pg_errors.ErrEmptyPolicyText
	}

	rules, tier := s.extractor.ExtractWithFallback(ctx, text, s.tierOne, viper.GetDuration("gemini.timeout"))

	doc := model.PolicyDocument{
		Filename:       filename,
		SizeBytes:      int64(len(data)),
		ExtractedText:  text,
		ExtractionTier: tier,
		RuleCount:      len(rules),
		UploadedBy:     userID,
	}

	policyID, err := s.policyDAO.CreatePolicy(ctx, doc, userID)
	if err != nil {
		logger.Error("Error creating policy document", zap.Error(err), zap.String("userID", userID))
		return nil, nil, err
	}
	doc.ID = policyID

	for i := range rules {
		rules[i].PolicyID = policyID
	}
	if len(rules) > 0 {
		ruleIDs, err := s.ruleDAO.CreateRules(ctx, rules, userID)
		if err != nil {
			logger.Error("Error persisting extracted rules", zap.Error(err), zap.String("policyID", policyID))
			return nil, nil, err
		}
		for i := range rules {
			rules[i].ID = ruleIDs[i]
		}
	}

	// Publish event for asynchronous processing
	s.eventBus.Publish(ctx, "rules.extracted", doc)

	logger.Info("Policy uploaded",
		zap.String("policyID", policyID),
		zap.String("filename", filename),
		zap.String("tier", tier),
		zap.Int("ruleCount", len(rules)),
		zap.String("userID", userID))
	return &doc, rules, nil
}

// GetPolicy retrieves a policy document by its ID
func (s *PolicyService) GetPolicy(ctx context.Context, policyID string) (*model.PolicyDocument, error) {
	policy, err := s.policyDAO.GetPolicy(ctx, policyID)
	if err != nil {
		if errors.Is(err, pg_errors.ErrPolicyNotFound) {
			return nil, pg_errors.ErrPolicyNotFound
		}
		logger.Error("Error retrieving policy document", zap.Error(err), zap.String("policyID", policyID))
		return nil, pg_errors.ErrInternalServer
	}
	return policy, nil
}

// ListPolicies retrieves uploaded policy documents, possibly with pagination
func (s *PolicyService) ListPolicies(ctx context.Context, limit, offset int) ([]model.PolicyDocument, error) {
	policies, err := s.policyDAO.ListPolicies(ctx, limit, offset)
	if err != nil {
		logger.Error("Error listing policy documents", zap.Error(err), zap.Int("limit", limit), zap.Int("offset", offset))
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}
	return policies, nil
}

// DeletePolicy removes a policy document and the rules extracted from it
func (s *PolicyService) DeletePolicy(ctx context.Context, policyID string, userID string) error {
	// Evict cached rules before the rows disappear.
	rules, err := s.ruleDAO.ListRules(ctx, model.RuleSearchCriteria{PolicyID: policyID})
	if err == nil {
		for _, rule := range rules {
			if err := s.cacheService.DeleteRule(ctx, rule.ID); err != nil {
				logger.Warn("Failed to evict rule from cache", zap.Error(err), zap.String("ruleID", rule.ID))
			}
		}
	}

	if err := s.policyDAO.DeletePolicy(ctx, policyID, userID); err != nil {
		if errors.Is(err, pg_errors.ErrPolicyNotFound) {
			return err
		}
		logger.Error("Error deleting policy document", zap.Error(err), zap.String("policyID", policyID), zap.String("userID", userID))
		return fmt.Errorf("failed to delete policy: %w", err)
	}

	logger.Info("Policy deleted", zap.String("policyID", policyID), zap.String("userID", userID))
	return nil
}
