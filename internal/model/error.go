package model

import (
	"errors"
	"fmt"
)

// ErrorCode is a stable machine-readable failure class.
type ErrorCode string

const (
	ErrValidation            ErrorCode = "VALIDATION_ERROR"
	ErrMalformedVoucher      ErrorCode = "MALFORMED_VOUCHER"
	ErrMalformedAddress      ErrorCode = "MALFORMED_ADDRESS"
	ErrInvalidRecipient      ErrorCode = "INVALID_RECIPIENT"
	ErrInvalidSignature      ErrorCode = "INVALID_SIGNATURE"
	ErrExpired               ErrorCode = "EXPIRED"
	ErrInsufficientAllowance ErrorCode = "INSUFFICIENT_ALLOWANCE"
	ErrInsufficientBalance   ErrorCode = "INSUFFICIENT_BALANCE"
	ErrStorage               ErrorCode = "STORAGE_ERROR"
)

// CodedError carries an ErrorCode alongside a human-readable message.
type CodedError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *CodedError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a CodedError with a formatted message.
func NewError(code ErrorCode, format string, args ...any) *CodedError {
	return &CodedError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the ErrorCode from err, looking through wrapping.
// Errors without a code map to STORAGE_ERROR's sibling class "" (unknown).
func CodeOf(err error) ErrorCode {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ""
}

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
