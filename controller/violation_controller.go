// api/controller/violation_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pg_errors "github.com/policyguard/api/errors"
	"github.com/policyguard/api/model"
	"github.com/policyguard/api/service"
	"github.com/policyguard/api/util"
	helper_util "github.com/policyguard/api/util/helper"
)

type ViolationController struct {
	violationService service.IViolationService
}

func NewViolationController(violationService service.IViolationService) *ViolationController {
	return &ViolationController{
		violationService: violationService,
	}
}

// RegisterRoutes registers the API routes
func (vc *ViolationController) RegisterRoutes(r *gin.RouterGroup) {
	violations := r.Group("/violations")
	{
		violations.GET("", vc.ListViolations)
		violations.GET("/summary", vc.GetSummary)
		violations.DELETE("/:id", vc.DeleteViolation)
	}
}

// ListViolations endpoint
func (vc *ViolationController) ListViolations(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	criteria := model.ViolationSearchCriteria{
		EmployeeID: c.Query("employee_id"),
		RuleID:     c.Query("rule_id"),
		Severity:   c.Query("severity"),
		Limit:      limit,
		Offset:     offset,
	}

	violations, err := vc.violationService.ListViolations(c, criteria)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list violations", err)
		return
	}

	c.JSON(http.StatusOK, violations)
}

// GetSummary endpoint
func (vc *ViolationController) GetSummary(c *gin.Context) {
	summary, err := vc.violationService.Summary(c)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to compute violation summary", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// DeleteViolation endpoint
func (vc *ViolationController) DeleteViolation(c *gin.Context) {
	violationID := c.Param("id")
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := vc.violationService.DeleteViolation(c, violationID, userID); err != nil {
		if errors.Is(err, pg_errors.ErrViolationNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Violation not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete violation", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
