// api/controller/scan_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pg_errors "github.com/policyguard/api/errors"
	"github.com/policyguard/api/service"
	"github.com/policyguard/api/util"
)

type ScanController struct {
	scanService service.IScanService
}

func NewScanController(scanService service.IScanService) *ScanController {
	return &ScanController{
		scanService: scanService,
	}
}

// RegisterRoutes registers the API routes
func (sc *ScanController) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/scan", sc.RunScan)
}

// RunScan endpoint triggers a full compliance scan
func (sc *ScanController) RunScan(c *gin.Context) {
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", pg_errors.ErrUnauthorized)
		return
	}

	report, err := sc.scanService.RunScan(c, userID)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to run compliance scan", err)
		return
	}

	c.JSON(http.StatusOK, report)
}
