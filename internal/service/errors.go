package service

import (
	"net/http"
	"strings"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error carries the HTTP status a failure maps to, so handlers stay thin.
type Error struct {
	Status  int
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string { return e.Message }

func NotFound(msg string) *Error     { return &Error{Status: http.StatusNotFound, Message: msg} }
func Conflict(msg string) *Error     { return &Error{Status: http.StatusConflict, Message: msg} }
func BadRequest(msg string) *Error   { return &Error{Status: http.StatusBadRequest, Message: msg} }
func Unauthorized(msg string) *Error { return &Error{Status: http.StatusUnauthorized, Message: msg} }

func TooManyAttempts(msg string) *Error {
	return &Error{Status: http.StatusTooManyRequests, Message: msg}
}

// FieldRef flags a referenced-but-missing id in a request body. Path ids map
// to 404, body ids to 400.
func FieldRef(field, msg string) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Message: msg,
		Fields:  []FieldError{{Field: field, Message: msg}},
	}
}

// isDupKey recognizes unique-index violations across mysql, postgres and
// sqlite. The app-level uniqueness pre-check can lose a race; the index is
// the authoritative enforcement and its error must still surface as 409.
func isDupKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "constraint failed")
}
