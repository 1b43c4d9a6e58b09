package failure

import (
	"errors"
	"net/http"
)

// Failure is an error that already knows the HTTP status it should be answered with.
// Anything that is not a Failure is answered with 500.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var ForbiddenError = New(http.StatusForbidden, "You don't have the required permissions")

func New(code int, message string) *Failure {
	return &Failure{Code: code, Message: message}
}

func (e *Failure) Error() string {
	return e.Message
}

// Is matches any Failure carrying the same code, so callers can test for a class of failure
// with errors.Is(err, failure.New(http.StatusNotFound, "")).
func (e *Failure) Is(target error) bool {
	var other *Failure
	if !errors.As(target, &other) {
		return false
	}

	return other.Code == e.Code
}

func fromError(code int, err error) error {
	if err == nil {
		return nil
	}

	return New(code, err.Error())
}

// BadRequest keeps the message of err. A nil err stays nil.
func BadRequest(err error) error {
	return fromError(http.StatusBadRequest, err)
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

// InternalError keeps the message of err. A nil err stays nil.
func InternalError(err error) error {
	return fromError(http.StatusInternalServerError, err)
}

// NotFound is used with a human readable subject, e.g. "booking not found".
func NotFound(msg string) error {
	return New(http.StatusNotFound, msg)
}

// Conflict covers double bookings and duplicate keys.
func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

// GetCode returns the status carried by err, or 500 when err is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
