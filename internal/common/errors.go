package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rotisserie/eris"
)

// Sentinel errors for the service layer. Handlers map these onto HTTP
// statuses with errors.Is; repositories translate store-level
// conditions (pgx.ErrNoRows, FK violations) into them so callers never
// see a driver error leak through.
var (
	ErrNotFound     = eris.New("not found")
	ErrInvalidInput = eris.New("invalid input")
	ErrConflict     = eris.New("conflict")
)

// NotFoundf wraps ErrNotFound with a resource description.
func NotFoundf(format string, args ...interface{}) error {
	return eris.Wrap(ErrNotFound, fmt.Sprintf(format, args...))
}

// InvalidInputf wraps ErrInvalidInput with a description of what was
// rejected.
func InvalidInputf(format string, args ...interface{}) error {
	return eris.Wrap(ErrInvalidInput, fmt.Sprintf(format, args...))
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{
		field: message,
	}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendClientError sends a client error response
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// SendServerError sends a server error response
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendNotFoundError sends a not found error response
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", fmt.Sprintf("%s not found", resource), nil))
}

// SendConflictError sends a conflict error response
func SendConflictError(c echo.Context, message string) error {
	return c.JSON(http.StatusConflict, CreateErrorResponse("CONFLICT", message, nil))
}

// SendDomainError maps a service-layer error onto the matching HTTP
// response, falling back to a generic server error.
func SendDomainError(c echo.Context, err error, resource string) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return SendNotFoundError(c, resource)
	case errors.Is(err, ErrInvalidInput):
		return SendClientError(c, err.Error())
	case errors.Is(err, ErrConflict):
		return SendConflictError(c, err.Error())
	default:
		return SendServerError(c, "Internal server error")
	}
}
