package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/tw-weather-advisor/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the domain error for logging and errors.Is checks.
func (e *HTTPError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

type errorMapping struct {
	status int
	code   string
}

// domainErrors maps pkg/errors codes to their response status and public code.
var domainErrors = map[string]errorMapping{
	apperrors.CodeInvalidInput:        {http.StatusBadRequest, "invalid_request"},
	apperrors.CodeLocationNotFound:    {http.StatusNotFound, apperrors.CodeLocationNotFound},
	apperrors.CodeProviderUnavailable: {http.StatusBadGateway, apperrors.CodeProviderUnavailable},
	apperrors.CodeMalformedForecast:   {http.StatusBadGateway, apperrors.CodeMalformedForecast},
}

const internalErrorMessage = "something went wrong"

// fromDomainError translates a service error; anything without a known code
// becomes a 500 with fallbackCode and a fixed message.
func fromDomainError(err error, fallbackCode string) *HTTPError {
	for code, m := range domainErrors {
		if apperrors.IsCode(err, code) {
			return NewHTTPError(m.status, m.code, apperrors.MessageOf(err), err)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, fallbackCode, internalErrorMessage, err)
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: internalErrorMessage,
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
