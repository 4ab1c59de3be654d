package fault

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a Fault.
type Kind string

const (
	// KindValidation marks a payload that must be fixed before resubmission.
	KindValidation Kind = "validation"
	// KindRetryable marks a transient failure; the whole reconciliation should be re-attempted.
	KindRetryable Kind = "retryable"
	// KindFatal marks a remote rejection that resubmission will not fix.
	KindFatal Kind = "fatal"
)

// Common fault codes.
const (
	CodeUnexpected       = "UNEXPECTED_ERROR"
	CodeMissingField     = "MISSING_REQUIRED_FIELD"
	CodeTypeMismatch     = "SCHEMA_TYPE_MISMATCH"
	CodeInvalidMatchRule = "INVALID_MATCH_CONFIGURATION"
	CodeRetryable        = "RETRYABLE_ERROR"
	CodeInvalidBody      = "INVALID_REQUEST_BODY"
)

// Fault is a classified reconciliation failure.
type Fault struct {
	// Kind decides whether the caller retries, fixes input, or dead-letters.
	Kind Kind `json:"kind"`
	// Code is a stable machine-readable identifier (e.g. MULTIPLE_EXISTING_RECORDS).
	Code string `json:"code"`
	// Message is the human-readable description, including any remote message.
	Message string `json:"message"`
	// Status is the HTTP status associated with the fault, if any.
	Status int `json:"status,omitempty"`
}

func (f *Fault) Error() string {
	return f.Message
}

// Validation creates a validation fault.
func Validation(code, msg string) *Fault {
	return &Fault{Kind: KindValidation, Code: code, Message: msg, Status: http.StatusBadRequest}
}

// Validationf creates a validation fault with a formatted message.
func Validationf(code, format string, args ...any) *Fault {
	return Validation(code, fmt.Sprintf(format, args...))
}

// Retryable creates a retryable fault.
func Retryable(msg string, status int) *Fault {
	return &Fault{Kind: KindRetryable, Code: CodeRetryable, Message: msg, Status: status}
}

// Fatal creates a fatal integration fault.
func Fatal(code, msg string, status int) *Fault {
	return &Fault{Kind: KindFatal, Code: code, Message: msg, Status: status}
}

// KindOf reports the kind of the first Fault in err's chain.
func KindOf(err error) (Kind, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind, true
	}
	return "", false
}

// As returns the first Fault in err's chain, or nil.
func As(err error) *Fault {
	var f *Fault
	if errors.As(err, &f) {
		return f
	}
	return nil
}

// IsSuccess reports whether status is one of the success statuses used by destination APIs.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}

// IsRetryableStatus reports whether a status is transient.
func IsRetryableStatus(status int) bool {
	switch status {
	case 401, 408, 423, 429, 500, 598, 599:
		return true
	}
	return status >= 502 && status <= 511
}

// AlreadyExists reports whether a response is a 409 conflict for an existing resource.
func AlreadyExists(status int, msg string) bool {
	return status == http.StatusConflict && strings.Contains(strings.ToLower(msg), "already exists")
}

// FromStatus classifies a non-success status as a *Fault. It returns a nil
// error for success statuses.
func FromStatus(status int, code, msg string) error {
	if IsSuccess(status) {
		return nil
	}
	if IsRetryableStatus(status) {
		return Retryable(msg, status)
	}
	if code == "" {
		code = CodeUnexpected
	}
	return Fatal(code, msg, status)
}
