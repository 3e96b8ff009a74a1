package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Navigation errors
	ErrCodeUnknownScreen ErrorCode = "UNKNOWN_SCREEN"
	ErrCodeStoreClosed   ErrorCode = "STORE_CLOSED"

	// History errors
	ErrCodeHistoryUnavailable ErrorCode = "HISTORY_UNAVAILABLE"

	// Analytics errors
	ErrCodeLogDelivery ErrorCode = "LOG_DELIVERY"
	ErrCodeLogStorage  ErrorCode = "LOG_STORAGE"

	// Configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// Collaborator errors
	ErrCodeChatUnavailable ErrorCode = "CHAT_UNAVAILABLE"
	ErrCodeCatalogInvalid  ErrorCode = "CATALOG_INVALID"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// KioskError represents a structured error with context
type KioskError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *KioskError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *KioskError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *KioskError) WithDetail(key string, value interface{}) *KioskError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *KioskError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new KioskError
func New(code ErrorCode, message string) *KioskError {
	return &KioskError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a KioskError
func Wrap(err error, code ErrorCode, message string) *KioskError {
	return &KioskError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific KioskError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	kioskErr, ok := err.(*KioskError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return kioskErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	kioskErr, ok := err.(*KioskError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return kioskErr.Code
}
