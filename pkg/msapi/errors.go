package msapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Status sentinels matched by ResponseError.Is.
var (
	ErrBadRequest      = errors.New("bad request")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrTooManyRequests = errors.New("too many requests")
	ErrServerError     = errors.New("server error")
)

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired       = errors.New("config is required")
	ErrAuthenticationFailed = errors.New("authentication failed")
)

// ResponseError is returned when an API answers with a 4xx or 5xx status.
type ResponseError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	ErrorName  string `json:"errorName,omitempty"`
	Body       []byte `json:"-"`
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	var details string

	switch {
	case e.Code != "" && e.Message != "":
		details = e.Code + ": " + e.Message
	case e.Message != "":
		details = e.Message
	case e.Code != "":
		details = e.Code
	default:
		details = http.StatusText(e.StatusCode)
	}

	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, details)
}

// Is matches the status sentinels, so errors.Is(err, ErrNotFound) works
// through any amount of wrapping.
func (e *ResponseError) Is(target error) bool {
	switch target {
	case ErrBadRequest:
		return e.StatusCode == http.StatusBadRequest
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	case ErrTooManyRequests:
		return e.StatusCode == http.StatusTooManyRequests
	case ErrServerError:
		return e.StatusCode >= http.StatusInternalServerError
	}

	return false
}

// partnerCenterError is the Partner Center error body.
type partnerCenterError struct {
	Code        json.RawMessage `json:"code"`
	Description string          `json:"description"`
	ErrorName   string          `json:"errorName"`
}

// graphError is the Microsoft Graph error body.
type graphError struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError builds a ResponseError from a status code and body. Both
// the Partner Center ({code, description}) and Graph ({error:{code,message}})
// shapes are understood; anything else keeps the raw body as the message.
func ParseResponseError(statusCode int, body []byte) *ResponseError {
	respErr := &ResponseError{
		StatusCode: statusCode,
		Body:       body,
	}

	var graphBody graphError
	if json.Unmarshal(body, &graphBody) == nil && graphBody.Error != nil {
		respErr.Code = graphBody.Error.Code
		respErr.Message = graphBody.Error.Message

		return respErr
	}

	var pcBody partnerCenterError
	if json.Unmarshal(body, &pcBody) == nil && (len(pcBody.Code) > 0 || pcBody.Description != "") {
		respErr.Code = strings.Trim(string(pcBody.Code), `"`)
		respErr.Message = pcBody.Description
		respErr.ErrorName = pcBody.ErrorName

		return respErr
	}

	respErr.Message = strings.TrimSpace(string(body))

	return respErr
}

// AuthenticationError reports a failed token request.
type AuthenticationError struct {
	StatusCode  int
	Code        string
	Description string
	Err         error
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	var builder strings.Builder

	builder.WriteString("authentication failed")

	if e.StatusCode != 0 {
		_, _ = fmt.Fprintf(&builder, " (status %d)", e.StatusCode)
	}

	if e.Code != "" {
		builder.WriteString(": " + e.Code)
	}

	if e.Description != "" {
		builder.WriteString(": " + e.Description)
	}

	if e.Err != nil {
		builder.WriteString(": " + e.Err.Error())
	}

	return builder.String()
}

// Unwrap returns the underlying transport or decoding error.
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrAuthenticationFailed.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthenticationFailed
}

// StatusCode extracts the HTTP status from a ResponseError anywhere in the
// chain. It returns 0 when err does not carry one.
func StatusCode(err error) int {
	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.StatusCode
	}

	return 0
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsConflict checks if the error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
