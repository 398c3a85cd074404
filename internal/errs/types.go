package errs

import (
	"net/http"
)

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code defaults to "BAD_REQUEST" when nil; errors carries field-level
// validation messages.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
		Action:   action,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewTooManyRequestsError creates a 429 HTTPError for the rate limiter.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)),
		Message:  message,
		Status:   http.StatusTooManyRequests,
		Override: true,
	}
}

// NewInternalServerError creates a generic 500. The message never carries
// internal details.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// ValidationError converts a generic validation error into a 400.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError("Validation failed: "+err.Error(), false, nil, nil, nil)
}

// ToHTTPError maps a domain error onto the client-facing shape.
func ToHTTPError(err *Error) *HTTPError {
	entity := MakeUpperCaseWithUnderscores(EntityTitle(err.Entity))

	switch err.Kind {
	case KindValidation:
		code := entity + "_INVALID"
		return NewBadRequestError(err.Message, true, &code, err.Fields, nil)

	case KindReferential:
		if err.Fatal {
			return &HTTPError{
				Code:     "INTEGRITY_ERROR",
				Message:  "Stored data references a record that no longer exists",
				Status:   http.StatusInternalServerError,
				Override: true,
			}
		}
		code := entity + "_NOT_FOUND"
		return NewBadRequestError(err.Message, true, &code, nil, nil)

	case KindNotFound:
		code := entity + "_NOT_FOUND"
		return NewNotFoundError(err.Message, true, &code)

	default:
		httpErr := NewInternalServerError()
		if err.Entity != "" {
			httpErr.Message = err.Message
			httpErr.Override = true
		}
		return httpErr
	}
}
