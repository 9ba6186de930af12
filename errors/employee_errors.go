// api/errors/employee_errors.go
package errors

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrInvalidEmployeeData = errors.New("invalid employee data")
	ErrEmployeeConflict    = errors.New("employee already exists")
	ErrInvalidDatasetFile  = errors.New("invalid dataset file")
	ErrViolationNotFound   = errors.New("violation not found")
)
