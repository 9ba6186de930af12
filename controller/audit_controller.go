// api/controller/audit_controller.go
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/policyguard/api/audit"
	pg_errors "github.com/policyguard/api/errors"
	"github.com/policyguard/api/util"
	helper_util "github.com/policyguard/api/util/helper"
)

type AuditController struct {
	auditService audit.Service
}

func NewAuditController(auditService audit.Service) *AuditController {
	return &AuditController{
		auditService: auditService,
	}
}

// RegisterRoutes registers the API routes
func (ac *AuditController) RegisterRoutes(r *gin.RouterGroup) {
	auditGroup := r.Group("/audit")
	{
		auditGroup.GET("/logs", ac.QueryLogs)
	}
}

// QueryLogs endpoint. Returns audit entries within a time window,
// optionally filtered by user or resource. The window defaults to the
// last 24 hours.
func (ac *AuditController) QueryLogs(c *gin.Context) {
	to := time.Now().UTC()
	from := to.Add(-24 * time.Hour)

	if raw := c.Query("from"); raw != "" {
		parsed, err := helper_util.ParseTime(raw)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' timestamp", err)
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := helper_util.ParseTime(raw)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' timestamp", err)
			return
		}
		to = parsed
	}

	logs, err := ac.auditService.QueryLogs(c, from, to, c.Query("user_id"), c.Query("resource_id"))
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to query audit logs", pg_errors.ErrInternalServer)
		return
	}

	c.JSON(http.StatusOK, logs)
}
