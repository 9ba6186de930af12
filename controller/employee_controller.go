// api/controller/employee_controller.go
package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	pg_errors "github.com/policyguard/api/errors"
	"github.com/policyguard/api/model"
	"github.com/policyguard/api/service"
	"github.com/policyguard/api/util"
	helper_util "github.com/policyguard/api/util/helper"
)

type EmployeeController struct {
	employeeService service.IEmployeeService
}

func NewEmployeeController(employeeService service.IEmployeeService) *EmployeeController {
	return &EmployeeController{
		employeeService: employeeService,
	}
}

// RegisterRoutes registers the API routes
func (ec *EmployeeController) RegisterRoutes(r *gin.RouterGroup) {
	employees := r.Group("/employees")
	{
		employees.POST("/upload", ec.UploadDataset)
		employees.GET("/:id", ec.GetEmployee)
		employees.GET("", ec.ListEmployees)
		employees.DELETE("/:id", ec.DeleteEmployee)
	}
}

// UploadDataset endpoint. Accepts a multipart "file" form field containing
// the employee dataset as CSV.
func (ec *EmployeeController) UploadDataset(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Missing dataset file", pg_errors.ErrInvalidDatasetFile)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Unreadable dataset file", pg_errors.ErrInvalidDatasetFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Unreadable dataset file", pg_errors.ErrInvalidDatasetFile)
		return
	}

	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", pg_errors.ErrUnauthorized)
		return
	}

	summary, err := ec.employeeService.ImportCSV(c, data, userID)
	if err != nil {
		switch {
		case errors.Is(err, pg_errors.ErrInvalidDatasetFile):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid dataset file", err)
		case errors.Is(err, pg_errors.ErrDatabaseOperation):
			util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to import dataset", pg_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusCreated, summary)
}

// GetEmployee endpoint
func (ec *EmployeeController) GetEmployee(c *gin.Context) {
	employeeID := c.Param("id")

	employee, err := ec.employeeService.GetEmployee(c, employeeID)
	if err != nil {
		if errors.Is(err, pg_errors.ErrEmployeeNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Employee not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve employee", err)
		}
		return
	}

	c.JSON(http.StatusOK, employee)
}

// ListEmployees endpoint
func (ec *EmployeeController) ListEmployees(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	criteria := model.EmployeeSearchCriteria{
		EmployeeID: c.Query("employee_id"),
		Name:       c.Query("name"),
		Month:      c.Query("month"),
		Limit:      limit,
		Offset:     offset,
	}

	employees, err := ec.employeeService.ListEmployees(c, criteria)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	c.JSON(http.StatusOK, employees)
}

// DeleteEmployee endpoint
func (ec *EmployeeController) DeleteEmployee(c *gin.Context) {
	employeeID := c.Param("id")
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := ec.employeeService.DeleteEmployee(c, employeeID, userID); err != nil {
		if errors.Is(err, pg_errors.ErrEmployeeNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Employee not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete employee", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
