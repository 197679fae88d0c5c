package errs

import (
	"net/http"
)

func codeFor(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors
func NewBadRequestError(detail string, code *string, errors []FieldError) *HTTPError {
	formattedCode := codeFor(http.StatusBadRequest)

	// The caller is expected to pass an already formatted code.
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:   formattedCode,
		Detail: detail,
		Status: http.StatusBadRequest,
		Errors: errors,
	}
}

// NewUnprocessableEntityError creates a 422 Unprocessable Entity HTTPError.
//
// It is what clients get when a request body is well formed HTTP but does not
// decode into the expected record: missing fields, wrong types, failed constraints.
func NewUnprocessableEntityError(detail string, errors []FieldError) *HTTPError {
	return &HTTPError{
		Code:   codeFor(http.StatusUnprocessableEntity),
		Detail: detail,
		Status: http.StatusUnprocessableEntity,
		Errors: errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(detail string, code *string) *HTTPError {
	formattedCode := codeFor(http.StatusNotFound)

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:   formattedCode,
		Detail: detail,
		Status: http.StatusNotFound,
	}
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError(detail string) *HTTPError {
	return &HTTPError{
		Code:   codeFor(http.StatusTooManyRequests),
		Detail: detail,
		Status: http.StatusTooManyRequests,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The detail is the generic status text, never the underlying error message.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:   codeFor(http.StatusInternalServerError),
		Detail: http.StatusText(http.StatusInternalServerError),
		Status: http.StatusInternalServerError,
	}
}

// ValidationError converts a validation failure without field information
// into a 422 HTTPError.
//
//	return errs.ValidationError(err)
func ValidationError(err error) *HTTPError {
	return NewUnprocessableEntityError("Validation failed: "+err.Error(), nil)
}
