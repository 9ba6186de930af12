// api/controller/audit_controller_test.go
package controller_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/policyguard/api/audit"
	"github.com/policyguard/api/controller"
	logger "github.com/policyguard/api/logging"
	svc_mock "github.com/policyguard/api/test/mock"
)

func TestAuditController(t *testing.T) {
	// Initialize logger
	logger.InitLogger("../logging")
	defer logger.Sync()

	mockAuditService := new(svc_mock.MockAuditService)
	auditController := controller.NewAuditController(mockAuditService)
	router := setupRouter()
	api := router.Group("/")
	auditController.RegisterRoutes(api)

	t.Run("QueryLogs_Success", func(t *testing.T) {
		logs := []audit.AuditLog{
			{Timestamp: time.Now().UTC(), UserID: "u1", Action: "SCAN_COMPLETED", ResourceID: "scan-1"},
		}
		mockAuditService.On("QueryLogs", mock.Anything, mock.Anything, mock.Anything, "u1", "").
			Return(logs, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/audit/logs?user_id=u1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got []audit.AuditLog
		json.NewDecoder(w.Body).Decode(&got)
		assert.Len(t, got, 1)
		assert.Equal(t, "SCAN_COMPLETED", got[0].Action)
	})

	t.Run("QueryLogs_ExplicitWindow", func(t *testing.T) {
		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		mockAuditService.On("QueryLogs", mock.Anything, from, to, "", "").
			Return([]audit.AuditLog{}, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/audit/logs?from=2026-01-01T00:00:00Z&to=2026-02-01T00:00:00Z", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("QueryLogs_Failure_BadTimestamp", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/audit/logs?from=yesterday", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("QueryLogs_Failure_ServiceError", func(t *testing.T) {
		mockAuditService.On("QueryLogs", mock.Anything, mock.Anything, mock.Anything, "", "").
			Return(nil, errors.New("search failed")).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/audit/logs", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	mockAuditService.AssertExpectations(t)
}
