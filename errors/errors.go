package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error carries an HTTP status alongside the message so handlers can
// respond without re-deriving the class of failure.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// Failure taxonomy. ErrNotFound means the record does not exist; the
// remaining sentinels mean the operation itself failed.
var (
	ErrNotFound            = New("record not found", http.StatusNotFound)
	ErrPersistence         = New("persistence failure", http.StatusInternalServerError)
	ErrValidation          = New("missing or invalid input", http.StatusBadRequest)
	ErrVerification        = New("waste verification failed", http.StatusUnprocessableEntity)
	ErrInvalidPassword     = New("invalid password", http.StatusUnauthorized)
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
)

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

// Is matches on the sentinel pointer or on an equal message/status pair,
// so wrapped copies still compare equal under errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e == t || (e.Message == t.Message && e.Status == t.Status)
}

// GetUniqueConstraintError converts a database uniqueness violation into a
// conflict error; anything else is treated as a persistence failure.
func GetUniqueConstraintError(err error) *Error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
		return New("record already exists", http.StatusConflict)
	}
	return ErrPersistence
}
