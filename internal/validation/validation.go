// Package validation turns raw request input into typed, validated records.
//
// It decodes field mappings into structs field by field, runs the
// `validator` library over the `validate` struct tags, and reports every
// failing field at once in a format the client can understand.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/daca-chatbot/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Validatable is implemented by records that know how to validate themselves.
//
// Typical pattern:
//   - declare constraints with tags (`validate:"email"`)
//   - implement Validate() error calling Struct(r), plus any custom rules
type Validatable interface {
	Validate() error
}

// Defaulter is implemented by records with fields that get a value when the
// input omits them. SetDefaults runs right after the record is decoded.
type Defaulter interface {
	SetDefaults()
}

// Errors aggregates every field that failed for one construction attempt.
type Errors []errs.FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Error)
	}

	noun := "errors"
	if len(e) == 1 {
		noun = "error"
	}

	return fmt.Sprintf("%d validation %s: %s", len(e), noun, strings.Join(parts, "; "))
}

// HTTPError converts the aggregate into the 422 response sent to clients.
func (e Errors) HTTPError() *errs.HTTPError {
	return errs.NewUnprocessableEntityError("Validation failed", []errs.FieldError(e))
}

// covers reports whether field, or one of its parents, already failed.
func (e Errors) covers(field string) bool {
	for _, fe := range e {
		if field == fe.Field ||
			strings.HasPrefix(field, fe.Field+".") ||
			strings.HasPrefix(field, fe.Field+"[") {
			return true
		}
	}
	return false
}

// validate is shared by all records; *validator.Validate is safe for concurrent use
// and caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so paths match what the client sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})

	return v
}

// Struct runs tag validation on v and converts failures into Errors.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	return fromValidator(validationErrors)
}

// Collect merges the results of several checks into one error.
//
// Errors values are concatenated; the first error of any other type is
// returned as is.
func Collect(results ...error) error {
	var all Errors
	for _, err := range results {
		if err == nil {
			continue
		}

		var fieldErrors Errors
		if !errors.As(err, &fieldErrors) {
			return err
		}
		all = append(all, fieldErrors...)
	}

	if len(all) == 0 {
		return nil
	}
	return all
}

func fromValidator(validationErrors validator.ValidationErrors) Errors {
	out := make(Errors, 0, len(validationErrors))
	for _, err := range validationErrors {
		out = append(out, errs.FieldError{
			Field:      fieldPath(err.Namespace()),
			Constraint: err.Tag(),
			Error:      message(err),
			Value:      err.Value(),
		})
	}
	return out
}

// fieldPath drops the root struct name from a validator namespace:
// "UserWithAddress.addresses[0].street" -> "addresses[0].street".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func message(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "field required"

	case "min":
		// min is a length for strings and collections, a value for numbers.
		switch {
		case err.Kind() == reflect.String:
			return fmt.Sprintf("must be at least %s characters", err.Param())
		case isCollection(err.Kind()):
			return fmt.Sprintf("must contain at least %s items", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())

	case "max":
		switch {
		case err.Kind() == reflect.String:
			return fmt.Sprintf("must not exceed %s characters", err.Param())
		case isCollection(err.Kind()):
			return fmt.Sprintf("must not contain more than %s items", err.Param())
		}
		return fmt.Sprintf("must not exceed %s", err.Param())

	case "email":
		return "must be a valid email address"

	case "dive":
		return "some items are invalid"

	default:
		if err.Param() != "" {
			return fmt.Sprintf("failed %s:%s", err.Tag(), err.Param())
		}
		return fmt.Sprintf("failed %s", err.Tag())
	}
}

func isCollection(kind reflect.Kind) bool {
	switch kind {
	case reflect.Slice, reflect.Map, reflect.Array:
		return true
	}
	return false
}
