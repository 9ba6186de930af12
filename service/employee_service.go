// api/service/employee_service.go
package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/policyguard/api/dao"
	pg_errors "github.com/policyguard/api/errors"
	logger "github.com/policyguard/api/logging"
	"github.com/policyguard/api/model"
	"github.com/policyguard/api/util"
)

// IEmployeeService handles the employee dataset: CSV imports and lookups.
type IEmployeeService interface {
	ImportCSV(ctx context.Context, data []byte, userID string) (*model.ImportSummary, error)
	GetEmployee(ctx context.Context, employeeID string) (*model.Employee, error)
	ListEmployees(ctx context.Context, criteria model.EmployeeSearchCriteria) ([]model.Employee, error)
	DeleteEmployee(ctx context.Context, employeeID string, userID string) error
}

type EmployeeService struct {
	employeeDAO     *dao.EmployeeDAO
	validationUtil  *util.ValidationUtil
	cacheService    *util.CacheService
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
}

var _ IEmployeeService = (*EmployeeService)(nil)

func NewEmployeeService(
	employeeDAO *dao.EmployeeDAO,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) *EmployeeService {
	service := &EmployeeService{
		employeeDAO:     employeeDAO,
		validationUtil:  validationUtil,
		cacheService:    cacheService,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
	}

	// Set up event subscriptions
	eventBus.Subscribe("employees.imported", service.handleEmployeesImported)

	return service
}

func (s *EmployeeService) handleEmployeesImported(ctx context.Context, event util.Event) error {
	summary, ok := event.Payload.(model.ImportSummary)
	if !ok {
		logger.Error("Invalid event payload type", zap.Any("payload", event.Payload))
		return fmt.Errorf("invalid event payload type: %T", event.Payload)
	}

	logger.Info("Employees imported event received",
		zap.Int("imported", summary.RecordsImported),
		zap.Int("skipped", summary.DuplicatesSkipped))

	if err := s.notificationSvc.NotifyDatasetImported(ctx, summary); err != nil {
		logger.Warn("Failed to send dataset import notification", zap.Error(err))
	}
	return nil
}

// ImportCSV parses an uploaded employee dataset and stores each new record.
// Rows whose employee ID already exists, in the database or earlier in the
// same file, are counted as duplicates and skipped.
func (s *EmployeeService) ImportCSV(ctx context.Context, data []byte, userID string) (*model.ImportSummary, error) {
	if len(data) == 0 {
		return nil, pg_errors.ErrInvalidDatasetFile
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		logger.Error("Failed to read CSV header", zap.Error(err))
		return nil, pg_errors.ErrInvalidDatasetFile
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = normalizeColumnName(h)
	}
	if !contains(columns, "employee_id") {
		return nil, fmt.Errorf("%w: missing employee_id column", pg_errors.ErrInvalidDatasetFile)
	}

	existing, err := s.employeeDAO.ExistingEmployeeIDs(ctx)
	if err != nil {
		return nil, err
	}

	var (
		toImport []model.Employee
		summary  model.ImportSummary
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Error("Failed to read CSV record", zap.Error(err))
			return nil, pg_errors.ErrInvalidDatasetFile
		}

		summary.TotalProcessed++
		emp := buildEmployee(columns, record)
		if emp.EmployeeID == "" {
			summary.DuplicatesSkipped++
			continue
		}
		if existing[emp.EmployeeID] {
			summary.DuplicatesSkipped++
			continue
		}
		existing[emp.EmployeeID] = true
		toImport = append(toImport, emp)
	}

	imported, err := s.employeeDAO.CreateEmployees(ctx, toImport, userID)
	if err != nil {
		logger.Error("Error importing employees", zap.Error(err), zap.String("userID", userID))
		return nil, err
	}
	summary.RecordsImported = imported

	// Publish event for asynchronous processing
	s.eventBus.Publish(ctx, "employees.imported", summary)

	logger.Info("Employee dataset imported",
		zap.Int("imported", summary.RecordsImported),
		zap.Int("skipped", summary.DuplicatesSkipped),
		zap.String("userID", userID))
	return &summary, nil
}

// GetEmployee retrieves an employee by their dataset ID
func (s *EmployeeService) GetEmployee(ctx context.Context, employeeID string) (*model.Employee, error) {
	// Try to get from cache first
	cachedEmployee, err := s.cacheService.GetEmployee(ctx, employeeID)
	if err == nil && cachedEmployee != nil {
		return cachedEmployee, nil
	}

	employee, err := s.employeeDAO.GetEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, pg_errors.ErrEmployeeNotFound) {
			return nil, pg_errors.ErrEmployeeNotFound
		}
		logger.Error("Error retrieving employee", zap.Error(err), zap.String("employeeID", employeeID))
		return nil, pg_errors.ErrInternalServer
	}

	// Update cache
	if err := s.cacheService.SetEmployee(ctx, *employee); err != nil {
		logger.Warn("Failed to cache employee", zap.Error(err), zap.String("employeeID", employeeID))
	}

	return employee, nil
}

// ListEmployees retrieves employees matching the given criteria
func (s *EmployeeService) ListEmployees(ctx context.Context, criteria model.EmployeeSearchCriteria) ([]model.Employee, error) {
	employees, err := s.employeeDAO.ListEmployees(ctx, criteria)
	if err != nil {
		logger.Error("Error listing employees", zap.Error(err), zap.Any("criteria", criteria))
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// DeleteEmployee removes an employee record
func (s *EmployeeService) DeleteEmployee(ctx context.Context, employeeID string, userID string) error {
	if err := s.employeeDAO.DeleteEmployee(ctx, employeeID, userID); err != nil {
		if errors.Is(err, pg_errors.ErrEmployeeNotFound) {
			return err
		}
		logger.Error("Error deleting employee", zap.Error(err), zap.String("employeeID", employeeID), zap.String("userID", userID))
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	// Remove from cache
	if err := s.cacheService.DeleteEmployee(ctx, employeeID); err != nil {
		logger.Warn("Failed to delete employee from cache", zap.Error(err), zap.String("employeeID", employeeID))
	}

	return nil
}

// normalizeColumnName maps CSV headers onto canonical column names:
// lowercase with spaces collapsed to underscores, so "Employee_ID",
// "employee id" and "Employee_Id" all become "employee_id".
func normalizeColumnName(h string) string {
	h = strings.TrimSpace(strings.ToLower(h))
	h = strings.ReplaceAll(h, " ", "_")
	return h
}

func buildEmployee(columns []string, record []string) model.Employee {
	var emp model.Employee
	for i, col := range columns {
		if i >= len(record) {
			break
		}
		value := strings.TrimSpace(record[i])
		switch col {
		case "employee_id":
			emp.EmployeeID = value
		case "name", "employee_name":
			emp.Name = value
		case "working_days":
			emp.WorkingDays = parseInt(value)
		case "target_sales":
			emp.TargetSales = parseInt(value)
		case "actual_sales":
			emp.ActualSales = parseInt(value)
		case "customer_satisfaction_score":
			emp.CustomerSatisfactionScore = parseFloat(value)
		case "policy_compliance":
			emp.PolicyCompliance = value
		case "low_working_days":
			emp.LowWorkingDays = parseBool(value)
		case "target_not_met":
			emp.TargetNotMet = parseBool(value)
		case "low_customer_satisfaction":
			emp.LowCustomerSatisfaction = parseBool(value)
		case "non_compliance_reason":
			emp.NonComplianceReason = value
		case "month":
			emp.Month = value
		default:
			if col == "" || value == "" {
				continue
			}
			if emp.Extra == nil {
				emp.Extra = make(map[string]any)
			}
			emp.Extra[col] = value
		}
	}
	return emp
}

func parseInt(s string) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	// Excel exports often render integers as "20.0".
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func parseFloat(s string) float64 {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return 0
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true
	}
	return false
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
