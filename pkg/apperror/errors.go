// Package apperror provides a structured way to handle application errors
// with specific codes, severity levels, and additional details. It also
// includes utilities for converting to and from gRPC status errors.
package apperror

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorCode represents a specific application error code.
type ErrorCode string

const (
	// C1 — coordinate parsing. Recovered locally; callers receive a bool-ok
	// result rather than this code in practice, but it is used for logging.
	CodeCoordinateParseFailed ErrorCode = "COORDINATE_PARSE_FAILED"

	// C2 — port registry loading. Both are recovered locally (line/file skipped).
	CodeCSVLineMalformed ErrorCode = "CSV_LINE_MALFORMED"
	CodeCSVFileMissing   ErrorCode = "CSV_FILE_MISSING"

	// C3 — port snapping. Both fail the request.
	CodeNoSeaportFound       ErrorCode = "NO_SEAPORT_FOUND"
	CodeNoSeaportWithinRange ErrorCode = "NO_SEAPORT_WITHIN_RANGE"

	// Optional request validators.
	CodeCoordinateOnLand      ErrorCode = "COORDINATE_ON_LAND"
	CodePolarRegionUnsupported ErrorCode = "POLAR_REGION_UNSUPPORTED"

	// C6 — query-time sea-node snapping.
	CodeGraphSnapFailed ErrorCode = "GRAPH_SNAP_FAILED"

	// C5 — offline graph build. All strict; fail the build.
	CodeLandMaskLoadFailed          ErrorCode = "LAND_MASK_LOAD_FAILED"
	CodeConnectivityInvariantViolated ErrorCode = "CONNECTIVITY_INVARIANT_VIOLATED"
	CodeInvalidConfig               ErrorCode = "INVALID_CONFIG"

	// Shared I/O failure, raised by C4 and C5.
	CodeIOFailed ErrorCode = "IO_FAILED"

	// General-purpose codes carried from the ambient layer.
	CodeInternal        ErrorCode = "INTERNAL_ERROR"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	CodeUnimplemented   ErrorCode = "UNIMPLEMENTED"
)

// Severity defines the criticality level of an error.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Error is a custom error type that includes an ErrorCode, message,
// an optional field, additional details, an underlying cause, and a severity level.
type Error struct {
	Code     ErrorCode
	Message  string
	Field    string
	Details  map[string]any
	Cause    error
	Severity Severity
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// GRPCStatus converts the application error into a gRPC status.Status.
func (e *Error) GRPCStatus() *status.Status {
	return status.New(e.grpcCode(), e.Message)
}

func (e *Error) grpcCode() codes.Code {
	switch e.Code {
	case CodeInvalidArgument, CodeInvalidConfig, CodeCoordinateParseFailed:
		return codes.InvalidArgument
	case CodeNotFound, CodeNoSeaportFound, CodeNoSeaportWithinRange:
		return codes.NotFound
	case CodeCoordinateOnLand, CodePolarRegionUnsupported, CodeGraphSnapFailed,
		CodeConnectivityInvariantViolated:
		return codes.FailedPrecondition
	case CodeUnimplemented:
		return codes.Unimplemented
	case CodeIOFailed, CodeLandMaskLoadFailed:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// New creates a new application error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, Details: make(map[string]any), Severity: SeverityError}
}

func NewWithField(code ErrorCode, message, field string) *Error {
	return &Error{Code: code, Message: message, Field: field, Details: make(map[string]any), Severity: SeverityError}
}

func NewWarning(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, Details: make(map[string]any), Severity: SeverityWarning}
}

func NewCritical(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, Details: make(map[string]any), Severity: SeverityCritical}
}

func Wrap(cause error, code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, Cause: cause, Details: make(map[string]any), Severity: SeverityError}
}

func (e *Error) WithDetails(key string, value any) *Error {
	e.Details[key] = value
	return e
}

func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

func (e *Error) WithSeverity(s Severity) *Error {
	e.Severity = s
	return e
}

// Is checks if the given error is an application error with a matching ErrorCode.
func Is(err error, code ErrorCode) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Code extracts the ErrorCode from an error, defaulting to CodeInternal.
func Code(err error) ErrorCode {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// ToGRPC converts an application error (or any error) into a gRPC error status.
func ToGRPC(err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.GRPCStatus().Err()
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(codes.Internal, err.Error())
}

// IsWarning reports whether err is an *Error with SeverityWarning.
func IsWarning(err error) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Severity == SeverityWarning
	}
	return false
}

// Predefined errors for common scenarios.
var (
	ErrNoSeaportFound = New(CodeNoSeaportFound, "no seaport available to snap to")
	ErrIOFailed       = New(CodeIOFailed, "I/O operation failed")
)

// ValidationErrors aggregates errors and warnings from a batch of checks,
// splitting them by severity.
type ValidationErrors struct {
	Errors   []*Error
	Warnings []*Error
}

func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{Errors: make([]*Error, 0), Warnings: make([]*Error, 0)}
}

func (v *ValidationErrors) Add(err *Error) {
	if err.Severity == SeverityWarning {
		v.Warnings = append(v.Warnings, err)
	} else {
		v.Errors = append(v.Errors, err)
	}
}

func (v *ValidationErrors) HasErrors() bool   { return len(v.Errors) > 0 }
func (v *ValidationErrors) HasWarnings() bool { return len(v.Warnings) > 0 }
func (v *ValidationErrors) IsValid() bool     { return !v.HasErrors() }
