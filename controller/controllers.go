// api/controller/controllers.go
package controller

import (
	"github.com/policyguard/api/audit"
	"github.com/policyguard/api/service"
)

type Controllers struct {
	Auth      *AuthController
	Policy    *PolicyController
	Rule      *RuleController
	Employee  *EmployeeController
	Violation *ViolationController
	Scan      *ScanController
	Audit     *AuditController
}

func InitializeControllers(services *service.Services, auditService audit.Service) *Controllers {
	return &Controllers{
		Auth:      NewAuthController(services.Auth),
		Policy:    NewPolicyController(services.Policy),
		Rule:      NewRuleController(services.Rule),
		Employee:  NewEmployeeController(services.Employee),
		Violation: NewViolationController(services.Violation),
		Scan:      NewScanController(services.Scan),
		Audit:     NewAuditController(auditService),
	}
}
