package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error carrying the HTTP status it maps to.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message, nil)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, message, nil)
}

func Validation(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// OutOfStock reports insufficient inventory at order-creation time.
func OutOfStock(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

func Unavailable(message string, err error) *Error {
	return New(http.StatusServiceUnavailable, message, err)
}

func Internal(message string, err error) *Error {
	return New(http.StatusInternalServerError, message, err)
}

// StatusCode returns the HTTP status for err, defaulting to 500.
func StatusCode(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// IsCode reports whether err is an application error with the given status.
func IsCode(err error, code int) bool {
	return StatusCode(err) == code
}

// Respond writes err as a JSON response. Non-application errors are hidden
// behind a generic 500 so internals never leak to clients.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal("Internal server error", err)
	}
	c.JSON(appErr.Code, gin.H{"message": appErr.Message})
}
