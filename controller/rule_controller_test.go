// api/controller/rule_controller_test.go
package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/policyguard/api/controller"
	pg_errors "github.com/policyguard/api/errors"
	logger "github.com/policyguard/api/logging"
	"github.com/policyguard/api/model"
	svc_mock "github.com/policyguard/api/test/mock"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.Default()
}

func TestRuleController(t *testing.T) {
	// Initialize logger
	logger.InitLogger("../logging")
	defer logger.Sync()

	mockRuleService := new(svc_mock.MockRuleService)
	ruleController := controller.NewRuleController(mockRuleService)
	router := setupRouter()
	api := router.Group("/")
	ruleController.RegisterRoutes(api)

	t.Run("CreateRule_Success", func(t *testing.T) {
		mockRuleService.On("CreateRule", mock.Anything, mock.Anything, mock.Anything).
			Return(&model.Rule{ID: "r1", Field: "working_days", Condition: ">= 20"}, nil).Once()

		body := strings.NewReader(`{"field":"working_days","condition":">= 20","severity":"High","description":"minimum attendance"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/rules", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("CreateRule_Failure_Invalid", func(t *testing.T) {
		mockRuleService.On("CreateRule", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, pg_errors.ErrInvalidRuleData).Once()

		body := strings.NewReader(`{"field":"working_days","condition":"twenty"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/rules", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GetRule_Success", func(t *testing.T) {
		mockRuleService.On("GetRule", mock.Anything, "r1").
			Return(&model.Rule{ID: "r1", Field: "working_days"}, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/rules/r1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var rule model.Rule
		json.NewDecoder(w.Body).Decode(&rule)
		assert.Equal(t, "r1", rule.ID)
	})

	t.Run("GetRule_Failure_NotFound", func(t *testing.T) {
		mockRuleService.On("GetRule", mock.Anything, "missing").
			Return(nil, pg_errors.ErrRuleNotFound).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/rules/missing", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("UpdateRule_Success", func(t *testing.T) {
		mockRuleService.On("UpdateRule", mock.Anything, mock.Anything, mock.Anything).
			Return(&model.Rule{ID: "r1", Field: "working_days", Condition: ">= 22"}, nil).Once()

		body := strings.NewReader(`{"field":"working_days","condition":">= 22","severity":"High","description":"minimum attendance"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/rules/r1", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("UpdateRule_Failure_NotFound", func(t *testing.T) {
		mockRuleService.On("UpdateRule", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, pg_errors.ErrRuleNotFound).Once()

		body := strings.NewReader(`{"field":"working_days","condition":">= 22"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/rules/missing", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("DeleteRule_Success", func(t *testing.T) {
		mockRuleService.On("DeleteRule", mock.Anything, "r1", mock.Anything).
			Return(nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/rules/r1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("ListRules_Success", func(t *testing.T) {
		rules := []model.Rule{
			{ID: "r1", Field: "working_days"},
			{ID: "r2", Field: "actual_sales"},
		}
		mockRuleService.On("ListRules", mock.Anything, mock.Anything).
			Return(rules, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/rules", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var got []model.Rule
		json.NewDecoder(w.Body).Decode(&got)
		assert.Len(t, got, 2)
	})

	t.Run("SetActive_Success", func(t *testing.T) {
		mockRuleService.On("SetActive", mock.Anything, "r1", false, mock.Anything).
			Return(&model.Rule{ID: "r1", IsActive: false}, nil).Once()

		body := strings.NewReader(`{"active":false}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PATCH", "/rules/r1/activate", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("SetActive_Failure_MissingBody", func(t *testing.T) {
		body := strings.NewReader(`{}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PATCH", "/rules/r1/activate", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	mockRuleService.AssertExpectations(t)
}
