// api/controller/policy_controller_test.go
package controller_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/policyguard/api/controller"
	pg_errors "github.com/policyguard/api/errors"
	logger "github.com/policyguard/api/logging"
	"github.com/policyguard/api/model"
	svc_mock "github.com/policyguard/api/test/mock"
)

func multipartFile(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestPolicyController(t *testing.T) {
	// Initialize logger
	logger.InitLogger("../logging")
	defer logger.Sync()

	mockPolicyService := new(svc_mock.MockPolicyService)
	policyController := controller.NewPolicyController(mockPolicyService)
	router := setupRouter()
	api := router.Group("/")
	policyController.RegisterRoutes(api)

	t.Run("UploadPolicy_Success", func(t *testing.T) {
		doc := &model.PolicyDocument{ID: "p1", Filename: "policy.txt", ExtractionTier: "regex", RuleCount: 1}
		rules := []model.Rule{{ID: "r1", Field: "working_days", Condition: ">= 20"}}
		mockPolicyService.On("UploadPolicy", mock.Anything, "policy.txt", mock.Anything, mock.Anything).
			Return(doc, rules, nil).Once()

		body, contentType := multipartFile(t, "file", "policy.txt", "Employees must work at least 20 working days per month.")
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/policies/upload", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Policy model.PolicyDocument `json:"policy"`
			Rules  []model.Rule         `json:"rules"`
		}
		json.NewDecoder(w.Body).Decode(&resp)
		assert.Equal(t, "p1", resp.Policy.ID)
		assert.Len(t, resp.Rules, 1)
	})

	t.Run("UploadPolicy_Failure_MissingFile", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/policies/upload", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("UploadPolicy_Failure_EmptyText", func(t *testing.T) {
		mockPolicyService.On("UploadPolicy", mock.Anything, "empty.txt", mock.Anything, mock.Anything).
			Return(nil, nil, pg_errors.ErrEmptyPolicyText).Once()

		body, contentType := multipartFile(t, "file", "empty.txt", "   ")
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/policies/upload", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("GetPolicy_Success", func(t *testing.T) {
		mockPolicyService.On("GetPolicy", mock.Anything, "p1").
			Return(&model.PolicyDocument{ID: "p1", Filename: "policy.txt"}, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/policies/p1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("GetPolicy_Failure_NotFound", func(t *testing.T) {
		mockPolicyService.On("GetPolicy", mock.Anything, "missing").
			Return(nil, pg_errors.ErrPolicyNotFound).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/policies/missing", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("ListPolicies_Success", func(t *testing.T) {
		policies := []model.PolicyDocument{
			{ID: "p1", Filename: "q1.pdf"},
			{ID: "p2", Filename: "q2.pdf"},
		}
		mockPolicyService.On("ListPolicies", mock.Anything, 10, 0).
			Return(policies, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/policies", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("DeletePolicy_Success", func(t *testing.T) {
		mockPolicyService.On("DeletePolicy", mock.Anything, "p1", mock.Anything).
			Return(nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/policies/p1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("DeletePolicy_Failure_NotFound", func(t *testing.T) {
		mockPolicyService.On("DeletePolicy", mock.Anything, "missing", mock.Anything).
			Return(pg_errors.ErrPolicyNotFound).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/policies/missing", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	mockPolicyService.AssertExpectations(t)
}
