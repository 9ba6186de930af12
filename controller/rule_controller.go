// api/controller/rule_controller.go
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

type RuleController struct {
	ruleService service.IRuleService
}

func NewRuleController(ruleService service.IRuleService) *RuleController {
	return &RuleController{
		ruleService: ruleService,
	}
}

// RegisterRoutes registers the API routes
func (rc *RuleController) RegisterRoutes(r *gin.RouterGroup) {
	rules := r.Group("/rules")
	{
		rules.POST("", rc.CreateRule)
		rules.GET("/:id", rc.GetRule)
		rules.PUT("/:id", rc.UpdateRule)
		rules.DELETE("/:id", rc.DeleteRule)
		rules.GET("", rc.ListRules)
		rules.PATCH("/:id/activate", rc.SetActive)
	}
}

// CreateRule endpoint
func (rc *RuleController) CreateRule(c *gin.Context) {
	var rule model.Rule
	if err := c.ShouldBindJSON(&rule); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid rule data", pg_errors.ErrInvalidRuleData)
		return
	}
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", pg_errors.ErrUnauthorized)
		return
	}

	createdRule, err := rc.ruleService.CreateRule(c, rule, userID)
	if err != nil {
		switch {
		case errors.Is(err, pg_errors.ErrInvalidRuleData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid rule data", err)
		case errors.Is(err, pg_errors.ErrDatabaseOperation):
			util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create rule", pg_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusCreated, createdRule)
}

// GetRule endpoint
func (rc *RuleController) GetRule(c *gin.Context) {
	ruleID := c.Param("id")

	rule, err := rc.ruleService.GetRule(c, ruleID)
	if err != nil {
		if errors.Is(err, pg_errors.ErrRuleNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Rule not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve rule", err)
		}
		return
	}

	c.JSON(http.StatusOK, rule)
}

// UpdateRule endpoint
func (rc *RuleController) UpdateRule(c *gin.Context) {
	ruleID := c.Param("id")
	var rule model.Rule
	if err := c.ShouldBindJSON(&rule); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid rule data", err)
		return
	}
	rule.ID = ruleID
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updatedRule, err := rc.ruleService.UpdateRule(c, rule, userID)
	if err != nil {
		switch {
		case errors.Is(err, pg_errors.ErrRuleNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Rule not found", err)
		case errors.Is(err, pg_errors.ErrInvalidRuleData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid rule data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update rule", err)
		}
		return
	}

	c.JSON(http.StatusOK, updatedRule)
}

// DeleteRule endpoint
func (rc *RuleController) DeleteRule(c *gin.Context) {
	ruleID := c.Param("id")
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := rc.ruleService.DeleteRule(c, ruleID, userID); err != nil {
		if errors.Is(err, pg_errors.ErrRuleNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Rule not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete rule", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// ListRules endpoint
func (rc *RuleController) ListRules(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	criteria := model.RuleSearchCriteria{
		Field:    c.Query("field"),
		Severity: c.Query("severity"),
		PolicyID: c.Query("policy_id"),
		Limit:    limit,
		Offset:   offset,
	}
	if active := c.Query("active"); active != "" {
		isActive := active == "true"
		criteria.Active = &isActive
	}

	rules, err := rc.ruleService.ListRules(c, criteria)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list rules", err)
		return
	}

	c.JSON(http.StatusOK, rules)
}

// SetActive endpoint toggles whether a rule participates in scans
func (rc *RuleController) SetActive(c *gin.Context) {
	ruleID := c.Param("id")
	var body struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid activation data", pg_errors.ErrInvalidRuleData)
		return
	}
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	rule, err := rc.ruleService.SetActive(c, ruleID, *body.Active, userID)
	if err != nil {
		if errors.Is(err, pg_errors.ErrRuleNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Rule not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update rule activation", err)
		}
		return
	}

	c.JSON(http.StatusOK, rule)
}
