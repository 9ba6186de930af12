// api/errors/policy_errors.go
package errors

import "errors"

var (
	ErrPolicyNotFound        = errors.New("policy document not found")
	ErrDatabaseOperation     = errors.New("database operation failed")
	ErrInvalidPolicyFile     = errors.New("invalid policy file")
	ErrEmptyPolicyText       = errors.New("no text could be extracted from policy file")
	ErrInternalServer        = errors.New("internal server error")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInvalidPagination     = errors.New("invalid pagination parameters")
	ErrInvalidSearchCriteria = errors.New("invalid search criteria")
)
