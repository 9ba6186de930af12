// api/service/services.go
package service

import (
	"gorm.io/gorm"

	"github.com/policyguard/api/audit"
	"github.com/policyguard/api/config"
	"github.com/policyguard/api/dao"
	"github.com/policyguard/api/engine"
	"github.com/policyguard/api/util"
)

type Services struct {
	Auth      IAuthService
	Policy    IPolicyService
	Rule      IRuleService
	Employee  IEmployeeService
	Violation IViolationService
	Scan      IScanService
}

func InitializeServices(
	db *gorm.DB,
	auditService audit.Service,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
	tierOne engine.TierOneExtractor,
) (*Services, error) {
	policyDAO := dao.NewPolicyDAO(db, auditService)
	ruleDAO := dao.NewRuleDAO(db, auditService)
	employeeDAO := dao.NewEmployeeDAO(db, auditService)
	violationDAO := dao.NewViolationDAO(db, auditService)
	userDAO := dao.NewUserDAO(db, auditService)

	registry := engine.DefaultRegistry()
	extractor := engine.NewExtractor(registry)
	scanner := engine.NewScanner(registry, config.GetInt("scan.concurrency"))

	services := &Services{
		Auth:      NewAuthService(userDAO, validationUtil),
		Policy:    NewPolicyService(policyDAO, ruleDAO, extractor, tierOne, validationUtil, cacheService, notificationSvc, eventBus),
		Rule:      NewRuleService(ruleDAO, validationUtil, cacheService, notificationSvc, eventBus),
		Employee:  NewEmployeeService(employeeDAO, validationUtil, cacheService, notificationSvc, eventBus),
		Violation: NewViolationService(violationDAO, cacheService, eventBus),
		Scan:      NewScanService(ruleDAO, employeeDAO, violationDAO, scanner, auditService, cacheService, notificationSvc, eventBus),
	}

	return services, nil
}
