package errs

import "net/http"

func newError(status int, message string, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(status))
	if code != nil {
		formattedCode = *code
	}
	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  status,
	}
}

func NewBadRequestError(message string, code *string, errors []FieldError) *HTTPError {
	e := newError(http.StatusBadRequest, message, code)
	e.Errors = errors
	return e
}

func NewNotFoundError(message string, code *string) *HTTPError {
	return newError(http.StatusNotFound, message, code)
}

func NewConflictError(message string, code *string) *HTTPError {
	return newError(http.StatusConflict, message, code)
}

func NewUnsupportedMediaTypeError(message string) *HTTPError {
	return newError(http.StatusUnsupportedMediaType, message, nil)
}

func NewServiceUnavailableError(message string) *HTTPError {
	return newError(http.StatusServiceUnavailable, message, nil)
}

// NewInternalServerError never carries the underlying cause; log it instead.
func NewInternalServerError() *HTTPError {
	return newError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), nil)
}
