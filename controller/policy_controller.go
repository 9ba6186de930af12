// api/controller/policy_controller.go
package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	pg_errors "github.com/policyguard/api/errors"
	"github.com/policyguard/api/service"
	"github.com/policyguard/api/util"
	helper_util "github.com/policyguard/api/util/helper"
)

type PolicyController struct {
	policyService service.IPolicyService
}

func NewPolicyController(policyService service.IPolicyService) *PolicyController {
	return &PolicyController{
		policyService: policyService,
	}
}

// RegisterRoutes registers the API routes
func (pc *PolicyController) RegisterRoutes(r *gin.RouterGroup) {
	policies := r.Group("/policies")
	{
		policies.POST("/upload", pc.UploadPolicy)
		policies.GET("/:id", pc.GetPolicy)
		policies.GET("", pc.ListPolicies)
		policies.DELETE("/:id", pc.DeletePolicy)
	}
}

// UploadPolicy endpoint. Accepts a multipart "file" form field containing a
// PDF or plain-text policy document and returns the extracted rules.
func (pc *PolicyController) UploadPolicy(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Missing policy file", pg_errors.ErrInvalidPolicyFile)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Unreadable policy file", pg_errors.ErrInvalidPolicyFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Unreadable policy file", pg_errors.ErrInvalidPolicyFile)
		return
	}

	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", pg_errors.ErrUnauthorized)
		return
	}

	doc, rules, err := pc.policyService.UploadPolicy(c, fileHeader.Filename, data, userID)
	if err != nil {
		switch {
		case errors.Is(err, pg_errors.ErrInvalidPolicyFile):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid policy file", err)
		case errors.Is(err, pg_errors.ErrEmptyPolicyText):
			util.RespondWithError(c, http.StatusUnprocessableEntity, "Policy file contains no text", err)
		case errors.Is(err, pg_errors.ErrDatabaseOperation):
			util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to upload policy", pg_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"policy": doc,
		"rules":  rules,
	})
}

// GetPolicy endpoint
func (pc *PolicyController) GetPolicy(c *gin.Context) {
	policyID := c.Param("id")

	policy, err := pc.policyService.GetPolicy(c, policyID)
	if err != nil {
		if errors.Is(err, pg_errors.ErrPolicyNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Policy not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve policy", err)
		}
		return
	}

	c.JSON(http.StatusOK, policy)
}

// ListPolicies endpoint
func (pc *PolicyController) ListPolicies(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	policies, err := pc.policyService.ListPolicies(c, limit, offset)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list policies", err)
		return
	}

	c.JSON(http.StatusOK, policies)
}

// DeletePolicy endpoint
func (pc *PolicyController) DeletePolicy(c *gin.Context) {
	policyID := c.Param("id")
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := pc.policyService.DeletePolicy(c, policyID, userID); err != nil {
		if errors.Is(err, pg_errors.ErrPolicyNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Policy not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete policy", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
