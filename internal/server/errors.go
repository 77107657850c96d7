package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/staffdeck/staffdeck/internal/auth/domain"
	branchdomain "github.com/staffdeck/staffdeck/internal/branch/domain"
	companydomain "github.com/staffdeck/staffdeck/internal/company/domain"
	employeedomain "github.com/staffdeck/staffdeck/internal/employee/domain"
	messagedomain "github.com/staffdeck/staffdeck/internal/message/domain"
	reportdomain "github.com/staffdeck/staffdeck/internal/report/domain"
	roledomain "github.com/staffdeck/staffdeck/internal/role/domain"
	taskdomain "github.com/staffdeck/staffdeck/internal/task/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrSessionNotFound):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case isForbiddenError(err):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, companydomain.ErrInvalidName),
		errors.Is(err, companydomain.ErrInvalidUsername),
		errors.Is(err, companydomain.ErrInvalidPassword),
		errors.Is(err, companydomain.ErrWrongPassword),
		errors.Is(err, branchdomain.ErrInvalidName),
		errors.Is(err, branchdomain.ErrParentRequired),
		errors.Is(err, branchdomain.ErrParentCompanyMismatch),
		errors.Is(err, branchdomain.ErrParentInactive),
		errors.Is(err, branchdomain.ErrParentSelf),
		errors.Is(err, roledomain.ErrInvalidName),
		errors.Is(err, roledomain.ErrInvalidLevel),
		errors.Is(err, roledomain.ErrReplacementRequired),
		errors.Is(err, roledomain.ErrSameRole),
		errors.Is(err, roledomain.ErrCompanyMismatch),
		errors.Is(err, employeedomain.ErrInvalidUsername),
		errors.Is(err, employeedomain.ErrInvalidPassword),
		errors.Is(err, employeedomain.ErrInvalidFullName),
		errors.Is(err, employeedomain.ErrWrongPassword),
		errors.Is(err, taskdomain.ErrInvalidDescription),
		errors.Is(err, taskdomain.ErrNoTarget),
		errors.Is(err, taskdomain.ErrBothTargets),
		errors.Is(err, taskdomain.ErrNoActiveEmployees),
		errors.Is(err, taskdomain.ErrNotBranchTask),
		errors.Is(err, reportdomain.ErrInvalidText),
		errors.Is(err, reportdomain.ErrInvalidDate),
		errors.Is(err, messagedomain.ErrInvalidText),
		errors.Is(err, messagedomain.ErrInvalidEndpoint),
		errors.Is(err, messagedomain.ErrSameSide):
		return true
	default:
		return false
	}
}

func isForbiddenError(err error) bool {
	switch {
	case errors.Is(err, ErrForbidden),
		errors.Is(err, authdomain.ErrInactiveAccount),
		errors.Is(err, employeedomain.ErrPermissionDenied),
		errors.Is(err, taskdomain.ErrPermissionDenied),
		errors.Is(err, reportdomain.ErrPermissionDenied):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, companydomain.ErrDuplicateName),
		errors.Is(err, companydomain.ErrDuplicateUsername),
		errors.Is(err, branchdomain.ErrDuplicateName),
		errors.Is(err, roledomain.ErrDuplicateName),
		errors.Is(err, employeedomain.ErrDuplicateUsername):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, companydomain.ErrNotFound),
		errors.Is(err, branchdomain.ErrNotFound),
		errors.Is(err, branchdomain.ErrParentNotFound),
		errors.Is(err, roledomain.ErrNotFound),
		errors.Is(err, employeedomain.ErrNotFound),
		errors.Is(err, employeedomain.ErrBranchNotFound),
		errors.Is(err, employeedomain.ErrRoleNotFound),
		errors.Is(err, taskdomain.ErrNotFound),
		errors.Is(err, taskdomain.ErrTargetNotFound),
		errors.Is(err, messagedomain.ErrNotFound),
		errors.Is(err, messagedomain.ErrCompanyNotFound):
		return true
	default:
		return false
	}
}
