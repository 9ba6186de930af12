// api/util/notification_service.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/policyguard/api/logging"
	"github.com/policyguard/api/model"
)

type NotificationService struct {
	// You might want to add dependencies here, such as a message queue client
}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

func (n *NotificationService) NotifyRulesExtracted(ctx context.Context, policy model.PolicyDocument, ruleCount int) error {
	// In a real implementation, you might send this to a message queue or external notification service
	logger.Info("NOTIFICATION: Rules extracted from policy document",
		zap.String("policyID", policy.ID),
		zap.String("filename", policy.Filename),
		zap.String("tier", policy.ExtractionTier),
		zap.Int("ruleCount", ruleCount))
	return nil
}

func (n *NotificationService) NotifyRuleChange(ctx context.Context, changeType string, rule model.Rule) error {
	switch changeType {
	case "created":
		logger.Info("NOTIFICATION: New rule created",
			zap.String("ruleID", rule.ID),
			zap.String("field", rule.Field))
	case "updated":
		logger.Info("NOTIFICATION: Rule updated",
			zap.String("ruleID", rule.ID),
			zap.String("field", rule.Field))
	case "deleted":
		logger.Info("NOTIFICATION: Rule deleted",
			zap.String("ruleID", rule.ID))
	default:
		return fmt.Errorf("unknown change type: %s", changeType)
	}
	return nil
}

// NotifyScanCompleted reports a finished compliance scan, flagging critical
// findings separately so operators can triage them first.
func (n *NotificationService) NotifyScanCompleted(ctx context.Context, newViolations int, criticalViolations int) error {
	logger.Info("NOTIFICATION: Compliance scan completed",
		zap.Int("newViolations", newViolations),
		zap.Int("criticalViolations", criticalViolations))

	if criticalViolations > 0 {
		return n.NotifyAdmins(ctx, fmt.Sprintf("compliance scan found %d critical violations", criticalViolations))
	}
	return nil
}

func (n *NotificationService) NotifyDatasetImported(ctx context.Context, summary model.ImportSummary) error {
	logger.Info("NOTIFICATION: Employee dataset imported",
		zap.Int("imported", summary.RecordsImported),
		zap.Int("skipped", summary.DuplicatesSkipped))
	return nil
}

func (n *NotificationService) SendEmail(ctx context.Context, recipient, subject, body string) error {
	// Mock email sending
	logger.Info("Sending email",
		zap.String("recipient", recipient),
		zap.String("subject", subject))
	return nil
}

func (n *NotificationService) NotifyAdmins(ctx context.Context, message string) error {
	// Logic to notify all system administrators
	logger.Info("Notifying admins", zap.String("message", message))
	return nil
}
