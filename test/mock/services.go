// test/mock/services.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/policyguard/api/model"
)

// MockRuleService is a mock implementation of service.IRuleService
type MockRuleService struct {
	mock.Mock
}

func (m *MockRuleService) CreateRule(ctx context.Context, rule model.Rule, userID string) (*model.Rule, error) {
	args := m.Called(ctx, rule, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Rule), args.Error(1)
}

func (m *MockRuleService) GetRule(ctx context.Context, ruleID string) (*model.Rule, error) {
	args := m.Called(ctx, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Rule), args.Error(1)
}

func (m *MockRuleService) UpdateRule(ctx context.Context, rule model.Rule, userID string) (*model.Rule, error) {
	args := m.Called(ctx, rule, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Rule), args.Error(1)
}

func (m *MockRuleService) DeleteRule(ctx context.Context, ruleID string, userID string) error {
	args := m.Called(ctx, ruleID, userID)
	return args.Error(0)
}

func (m *MockRuleService) ListRules(ctx context.Context, criteria model.RuleSearchCriteria) ([]model.Rule, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Rule), args.Error(1)
}

func (m *MockRuleService) SetActive(ctx context.Context, ruleID string, active bool, userID string) (*model.Rule, error) {
	args := m.Called(ctx, ruleID, active, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Rule), args.Error(1)
}

// MockScanService is a mock implementation of service.IScanService
type MockScanService struct {
	mock.Mock
}

func (m *MockScanService) RunScan(ctx context.Context, userID string) (*model.ScanReport, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScanReport), args.Error(1)
}

// MockViolationService is a mock implementation of service.IViolationService
type MockViolationService struct {
	mock.Mock
}

func (m *MockViolationService) ListViolations(ctx context.Context, criteria model.ViolationSearchCriteria) ([]model.Violation, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Violation), args.Error(1)
}

func (m *MockViolationService) Summary(ctx context.Context) (*model.ViolationSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ViolationSummary), args.Error(1)
}

func (m *MockViolationService) DeleteViolation(ctx context.Context, violationID string, userID string) error {
	args := m.Called(ctx, violationID, userID)
	return args.Error(0)
}

// MockAuthService is a mock implementation of service.IAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, creds model.Credentials) (*model.User, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, creds model.Credentials) (*model.TokenResponse, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TokenResponse), args.Error(1)
}

// MockEmployeeService is a mock implementation of service.IEmployeeService
type MockEmployeeService struct {
	mock.Mock
}

func (m *MockEmployeeService) ImportCSV(ctx context.Context, data []byte, userID string) (*model.ImportSummary, error) {
	args := m.Called(ctx, data, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImportSummary), args.Error(1)
}

func (m *MockEmployeeService) GetEmployee(ctx context.Context, employeeID string) (*model.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeService) ListEmployees(ctx context.Context, criteria model.EmployeeSearchCriteria) ([]model.Employee, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Employee), args.Error(1)
}

func (m *MockEmployeeService) DeleteEmployee(ctx context.Context, employeeID string, userID string) error {
	args := m.Called(ctx, employeeID, userID)
	return args.Error(0)
}

// MockPolicyService is a mock implementation of service.IPolicyService
type MockPolicyService struct {
	mock.Mock
}

func (m *MockPolicyService) UploadPolicy(ctx context.Context, filename string, data []byte, userID string) (*model.PolicyDocument, []model.Rule, error) {
	args := m.Called(ctx, filename, data, userID)
	var doc *model.PolicyDocument
	if args.Get(0) != nil {
		doc = args.Get(0).(*model.PolicyDocument)
	}
	var rules []model.Rule
	if args.Get(1) != nil {
		rules = args.Get(1).([]model.Rule)
	}
	return doc, rules, args.Error(2)
}

func (m *MockPolicyService) GetPolicy(ctx context.Context, policyID string) (*model.PolicyDocument, error) {
	args := m.Called(ctx, policyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PolicyDocument), args.Error(1)
}

func (m *MockPolicyService) ListPolicies(ctx context.Context, limit, offset int) ([]model.PolicyDocument, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PolicyDocument), args.Error(1)
}

func (m *MockPolicyService) DeletePolicy(ctx context.Context, policyID string, userID string) error {
	args := m.Called(ctx, policyID, userID)
	return args.Error(0)
}
