// api/controller/scan_controller_test.go
package controller_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/policyguard/api/controller"
	logger "github.com/policyguard/api/logging"
	"github.com/policyguard/api/model"
	svc_mock "github.com/policyguard/api/test/mock"
)

func TestScanController(t *testing.T) {
	// Initialize logger
	logger.InitLogger("../logging")
	defer logger.Sync()

	mockScanService := new(svc_mock.MockScanService)
	scanController := controller.NewScanController(mockScanService)
	router := setupRouter()
	api := router.Group("/")
	scanController.RegisterRoutes(api)

	t.Run("RunScan_Success", func(t *testing.T) {
		report := &model.ScanReport{
			NewViolations:  2,
			RulesUsed:      3,
			EmployeesTotal: 10,
			Violations: []model.Violation{
				{ID: "v1", EmployeeID: "e1", RuleID: "r1", Severity: model.SeverityHigh},
				{ID: "v2", EmployeeID: "e2", RuleID: "r2", Severity: model.SeverityCritical},
			},
		}
		mockScanService.On("RunScan", mock.Anything, mock.Anything).
			Return(report, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/scan", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got model.ScanReport
		json.NewDecoder(w.Body).Decode(&got)
		assert.Equal(t, 2, got.NewViolations)
		assert.Equal(t, 3, got.RulesUsed)
		assert.Len(t, got.Violations, 2)
	})

	t.Run("RunScan_Failure", func(t *testing.T) {
		mockScanService.On("RunScan", mock.Anything, mock.Anything).
			Return(nil, errors.New("database unavailable")).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/scan", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	mockScanService.AssertExpectations(t)
}
