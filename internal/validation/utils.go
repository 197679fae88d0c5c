package validation

import (
	"io"
	"net/http"

	"github.com/deppfellow/daca-chatbot/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BindAndValidate fills payload from the request and validates it.
//
// Flow:
//  1. Path parameters are bound through `param` tags.
//  2. For GET, DELETE and HEAD, query parameters are bound through `query` tags.
//  3. For POST, PUT and PATCH the JSON body is decoded with DecodeJSON, which
//     also runs payload.Validate(). Other methods call Validate() directly.
//
// Failures come back as a 422 *errs.HTTPError listing every offending field.
// payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	binder := &echo.DefaultBinder{}

	if err := binder.BindPathParams(c, payload); err != nil {
		return errs.NewBadRequestError("Invalid path parameters", nil, nil)
	}

	req := c.Request()
	switch req.Method {
	case http.MethodGet, http.MethodDelete, http.MethodHead:
		if err := binder.BindQueryParams(c, payload); err != nil {
			return errs.NewBadRequestError("Invalid query parameters", nil, nil)
		}

	case http.MethodPost, http.MethodPut, http.MethodPatch:
		body, err := io.ReadAll(req.Body)
		if err != nil {
			// The body limit middleware reports oversized bodies as a 413.
			var echoErr *echo.HTTPError
			if errors.As(err, &echoErr) {
				return echoErr
			}
			return errs.NewBadRequestError("Could not read request body", nil, nil)
		}
		return asHTTPError(DecodeJSON(body, payload))
	}

	return asHTTPError(payload.Validate())
}

func asHTTPError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrors Errors
	if errors.As(err, &fieldErrors) {
		return fieldErrors.HTTPError()
	}
	return errs.ValidationError(err)
}
