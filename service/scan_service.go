// api/service/scan_service.go
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/policyguard/api/audit"
	"github.com/policyguard/api/dao"
	"github.com/policyguard/api/engine"
	logger "github.com/policyguard/api/logging"
	"github.com/policyguard/api/model"
	"github.com/policyguard/api/util"
)

// IScanService runs compliance scans over the employee dataset.
type IScanService interface {
	RunScan(ctx context.Context, userID string) (*model.ScanReport, error)
}

type ScanService struct {
	ruleDAO         *dao.RuleDAO
	employeeDAO     *dao.EmployeeDAO
	violationDAO    *dao.ViolationDAO
	scanner         *engine.Scanner
	auditService    audit.Service
	cacheService    *util.CacheService
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
}

var _ IScanService = (*ScanService)(nil)

func NewScanService(
	ruleDAO *dao.RuleDAO,
	employeeDAO *dao.EmployeeDAO,
	violationDAO *dao.ViolationDAO,
	scanner *engine.Scanner,
	auditService audit.Service,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) *ScanService {
	service := &ScanService{
		ruleDAO:         ruleDAO,
		employeeDAO:     employeeDAO,
		violationDAO:    violationDAO,
		scanner:         scanner,
		auditService:    auditService,
		cacheService:    cacheService,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
	}

	// Set up event subscriptions
	eventBus.Subscribe("scan.completed", service.handleScanCompleted)

	return service
}

func (s *ScanService) handleScanCompleted(ctx context.Context, event util.Event) error {
	report, ok := event.Payload.(model.ScanReport)
	if !ok {
		logger.Error("Invalid event payload type", zap.Any("payload", event.Payload))
		return nil
	}

	critical := 0
	for _, v := range report.Violations {
		if v.Severity == model.SeverityCritical {
			critical++
		}
	}

	if err := s.notificationSvc.NotifyScanCompleted(ctx, report.NewViolations, critical); err != nil {
		logger.Warn("Failed to send scan completion notification", zap.Error(err))
	}
	return nil
}

// RunScan evaluates every active rule against every employee and persists
// the newly found violations. Pairs that already have a recorded violation
// are skipped, so repeated scans do not duplicate findings.
func (s *ScanService) RunScan(ctx context.Context, userID string) (*model.ScanReport, error) {
	rules, err := s.ruleDAO.ListActiveRules(ctx)
	if err != nil {
		return nil, err
	}
	employees, err := s.employeeDAO.ListAllEmployees(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := s.violationDAO.ExistingPairs(ctx)
	if err != nil {
		return nil, err
	}

	result := s.scanner.Scan(ctx, rules, employees, existing)

	if len(result.Violations) > 0 {
		if err := s.violationDAO.CreateViolations(ctx, result.Violations); err != nil {
			logger.Error("Error persisting scan violations", zap.Error(err), zap.Int("count", len(result.Violations)))
			return nil, err
		}
		// New rows make the cached summary stale.
		if err := s.cacheService.InvalidateViolationSummary(ctx); err != nil {
			logger.Warn("Failed to invalidate violation summary cache", zap.Error(err))
		}
	}

	report := model.ScanReport{
		NewViolations:  len(result.Violations),
		RulesUsed:      result.RulesUsed,
		EmployeesTotal: len(employees),
		Violations:     result.Violations,
	}
	for _, rej := range result.Rejected {
		report.RulesRejected = append(report.RulesRejected, model.RejectedRule{
			Field:     rej.Field,
			Condition: rej.Condition,
			Reason:    rej.Reason,
		})
	}

	if err := s.auditService.Record(ctx, audit.Entry(userID, audit.ActionScanCompleted, "",
		map[string]any{
			"new_violations": report.NewViolations,
			"rules_used":     report.RulesUsed,
			"employees":      report.EmployeesTotal,
		})); err != nil {
		logger.Warn("Failed to record scan audit entry", zap.Error(err))
	}

	// Publish event for asynchronous processing
	s.eventBus.Publish(ctx, "scan.completed", report)

	logger.Info("Compliance scan completed",
		zap.Int("newViolations", report.NewViolations),
		zap.Int("rulesUsed", report.RulesUsed),
		zap.Int("rulesRejected", len(report.RulesRejected)),
		zap.Int("employees", report.EmployeesTotal),
		zap.String("userID", userID))
	return &report, nil
}
