// api/dao/employee_dao.go
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

type EmployeeDAO struct {
	DB           *gorm.DB
	AuditService audit.Service
}

func NewEmployeeDAO(db *gorm.DB, auditService audit.Service) *EmployeeDAO {
	return &EmployeeDAO{DB: db, AuditService: auditService}
}

// ExistingEmployeeIDs returns the set of dataset employee_id values already
// present, used to skip duplicates on import.
func (dao *EmployeeDAO) ExistingEmployeeIDs(ctx context.Context) (map[string]bool, error) {
	var ids []string
	if err := dao.DB.WithContext(ctx).Model(&model.Employee{}).Pluck("employee_id", &ids).Error; err != nil {
		logger.Error("Failed to load existing employee IDs", zap.Error(err))
		return nil, pg_errors.ErrDatabaseOperation
	}
	existing := make(map[string]bool, len(ids))
	for _, id := range ids {
		existing[id] = true
	}
	return existing, nil
}

// CreateEmployees bulk-inserts imported records in one transaction.
func (dao *EmployeeDAO) CreateEmployees(ctx context.Context, employees []model.Employee, userID string) (int, error) {
	if len(employees) == 0 {
		return 0, nil
	}

	now := time.Now()
	for i := range employees {
		if employees[i].ID == "" {
			employees[i].ID = uuid.New().String()
		}
		employees[i].CreatedAt = now
		employees[i].UpdatedAt = now
	}

	if err := dao.DB.WithContext(ctx).Create(&employees).Error; err != nil {
		logger.Error("Failed to insert employees", zap.Error(err), zap.Int("count", len(employees)))
		return 0, pg_errors.ErrDatabaseOperation
	}

	if err := dao.AuditService.Record(ctx, audit.Entry(userID, audit.ActionDatasetImported, "",
		map[string]int{"records": len(employees)})); err != nil {
		logger.Warn("Failed to record dataset import audit entry", zap.Error(err))
	}

	logger.Info("Employees inserted", zap.Int("count", len(employees)))
	return len(employees), nil
}

func (dao *EmployeeDAO) GetEmployee(ctx context.Context, employeeID string) (*model.Employee, error) {
	var employee model.Employee
	err := dao.DB.WithContext(ctx).First(&employee, "id = ?", employeeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pg_errors.ErrEmployeeNotFound
	}
	if err != nil {
		logger.Error("Failed to get employee", zap.Error(err), zap.String("employeeID", employeeID))
		return nil, pg_errors.ErrDatabaseOperation
	}
	return &employee, nil
}

func (dao *EmployeeDAO) ListEmployees(ctx context.Context, criteria model.EmployeeSearchCriteria) ([]model.Employee, error) {
	query := dao.DB.WithContext(ctx).Model(&model.Employee{})
	if criteria.EmployeeID != "" {
		query = query.Where("employee_id = ?", criteria.EmployeeID)
	}
	if criteria.Name != "" {
		query = query.Where("name LIKE ?", "%"+criteria.Name+"%")
	}
	if criteria.Month != "" {
		query = query.Where("month = ?", criteria.Month)
	}
	if criteria.Limit > 0 {
		query = query.Limit(criteria.Limit)
	}
	if criteria.Offset > 0 {
		query = query.Offset(criteria.Offset)
	}

	var employees []model.Employee
	if err := query.Order("employee_id").Find(&employees).Error; err != nil {
		logger.Error("Failed to list employees", zap.Error(err))
		return nil, pg_errors.ErrDatabaseOperation
	}
	return employees, nil
}

// ListAllEmployees returns the full workforce for a scan.
func (dao *EmployeeDAO) ListAllEmployees(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	if err := dao.DB.WithContext(ctx).Order("employee_id").Find(&employees).Error; err != nil {
		logger.Error("Failed to list all employees", zap.Error(err))
		return nil, pg_errors.ErrDatabaseOperation
	}
	return employees, nil
}

func (dao *EmployeeDAO) DeleteEmployee(ctx context.Context, employeeID string, userID string) error {
	result := dao.DB.WithContext(ctx).Delete(&model.Employee{}, "id = ?", employeeID)
	if result.Error != nil {
		logger.Error("Failed to delete employee", zap.Error(result.Error), zap.String("employeeID", employeeID))
		return pg_errors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return pg_errors.ErrEmployeeNotFound
	}

	if err := dao.AuditService.Record(ctx, audit.Entry(userID, audit.ActionEmployeeDeleted, employeeID, nil)); err != nil {
		logger.Warn("Failed to record employee deletion audit entry", zap.Error(err), zap.String("employeeID", employeeID))
	}

	logger.Info("Employee deleted", zap.String("employeeID", employeeID))
	return nil
}
