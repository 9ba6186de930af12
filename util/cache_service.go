// api/util/cache_service.go

package util

import (
	"context"

	"github.com/policyguard/api/db"
	"github.com/policyguard/api/model"
)

type CacheService struct{}

func NewCacheService() *CacheService {
	return &CacheService{}
}

func (c *CacheService) GetRule(ctx context.Context, ruleID string) (*model.Rule, error) {
	return db.GetCachedRule(ctx, ruleID)
}

func (c *CacheService) SetRule(ctx context.Context, rule model.Rule) error {
	return db.CacheRule(ctx, &rule)
}

func (c *CacheService) DeleteRule(ctx context.Context, ruleID string) error {
	return db.DeleteCachedRule(ctx, ruleID)
}

func (c *CacheService) GetEmployee(ctx context.Context, employeeID string) (*model.Employee, error) {
	return db.GetCachedEmployee(ctx, employeeID)
}

func (c *CacheService) SetEmployee(ctx context.Context, employee model.Employee) error {
	return db.CacheEmployee(ctx, &employee)
}

func (c *CacheService) DeleteEmployee(ctx context.Context, employeeID string) error {
	return db.DeleteCachedEmployee(ctx, employeeID)
}

func (c *CacheService) GetViolationSummary(ctx context.Context) (*model.ViolationSummary, error) {
	return db.GetCachedViolationSummary(ctx)
}

func (c *CacheService) SetViolationSummary(ctx context.Context, summary model.ViolationSummary) error {
	return db.CacheViolationSummary(ctx, &summary)
}

func (c *CacheService) InvalidateViolationSummary(ctx context.Context) error {
	return db.DeleteCachedViolationSummary(ctx)
}
