package errs

import "strings"

// FieldError describes one field that failed decoding or validation.
// Example:
//
//	{ "field": "addresses[0].zip_code", "constraint": "required", "error": "field required" }
type FieldError struct {
	// Field is the JSON path of the offending field (e.g. "email", "tags[1]").
	Field string `json:"field"`

	// Constraint is the machine-readable rule that was violated
	// (e.g. "required", "type", "email", "min_length").
	Constraint string `json:"constraint"`

	// Error is the human-readable error message.
	Error string `json:"error"`

	// Value is the offending input, when there was one.
	Value any `json:"value,omitempty"`
}

// HTTPError is the main error type for API responses.
//
// It implements the `error` interface and is serialized directly to JSON:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST").
//   - Detail: human-friendly message.
//   - Status: HTTP status code.
//   - Errors: per-field errors, only set for validation failures.
type HTTPError struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
	Status int    `json:"status"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"errors,omitempty"`
}

// Error returns the Detail, so logging the error shows the client message.
func (e *HTTPError) Error() string {
	return e.Detail
}

// Is reports whether target is also an *HTTPError.
//
// Only the type is compared, not Code or Status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
