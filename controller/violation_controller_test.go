// api/controller/violation_controller_test.go
package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/policyguard/api/controller"
	pg_errors "github.com/policyguard/api/errors"
	logger "github.com/policyguard/api/logging"
	"github.com/policyguard/api/model"
	svc_mock "github.com/policyguard/api/test/mock"
)

func TestViolationController(t *testing.T) {
	// Initialize logger
	logger.InitLogger("../logging")
	defer logger.Sync()

	mockViolationService := new(svc_mock.MockViolationService)
	violationController := controller.NewViolationController(mockViolationService)
	router := setupRouter()
	api := router.Group("/")
	violationController.RegisterRoutes(api)

	t.Run("ListViolations_Success", func(t *testing.T) {
		violations := []model.Violation{
			{ID: "v1", EmployeeID: "e1", RuleID: "r1", Severity: model.SeverityHigh},
		}
		mockViolationService.On("ListViolations", mock.Anything, mock.Anything).
			Return(violations, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/violations?severity=High", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got []model.Violation
		json.NewDecoder(w.Body).Decode(&got)
		assert.Len(t, got, 1)
	})

	t.Run("GetSummary_Success", func(t *testing.T) {
		summary := &model.ViolationSummary{
			Total:      3,
			BySeverity: map[string]int{"High": 2, "Critical": 1},
			ByRule:     map[string]int{"r1": 3},
		}
		mockViolationService.On("Summary", mock.Anything).
			Return(summary, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/violations/summary", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got model.ViolationSummary
		json.NewDecoder(w.Body).Decode(&got)
		assert.Equal(t, 3, got.Total)
		assert.Equal(t, 2, got.BySeverity["High"])
	})

	t.Run("DeleteViolation_Success", func(t *testing.T) {
		mockViolationService.On("DeleteViolation", mock.Anything, "v1", mock.Anything).
			Return(nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/violations/v1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("DeleteViolation_Failure_NotFound", func(t *testing.T) {
		mockViolationService.On("DeleteViolation", mock.Anything, "missing", mock.Anything).
			Return(pg_errors.ErrViolationNotFound).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/violations/missing", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	mockViolationService.AssertExpectations(t)
}
