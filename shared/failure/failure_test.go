package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"bad request", failure.BadRequest(errors.New("check_out_date must be after check_in_date")), http.StatusBadRequest, "check_out_date must be after check_in_date"},
		{"bad request from string", failure.BadRequestFromString("invalid guests parameter"), http.StatusBadRequest, "invalid guests parameter"},
		{"unauthorized", failure.Unauthorized("Token has expired"), http.StatusUnauthorized, "Token has expired"},
		{"internal", failure.InternalError(errors.New("redis down")), http.StatusInternalServerError, "redis down"},
		{"not found", failure.NotFound("room not found"), http.StatusNotFound, "room not found"},
		{"conflict", failure.Conflict("room is already booked"), http.StatusConflict, "room is already booked"},
		{"forbidden", failure.ForbiddenError, http.StatusForbidden, "You don't have the required permissions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.EqualError(t, tt.err, tt.message)
		})
	}
}

func TestNilErrorsStayNil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestGetCode_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("failed to create booking: %w", failure.Conflict("room is already booked"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(nil))
}

func TestFailure_Is(t *testing.T) {
	err := fmt.Errorf("lookup: %w", failure.NotFound("booking not found"))

	assert.ErrorIs(t, err, failure.New(http.StatusNotFound, ""))
	assert.NotErrorIs(t, err, failure.New(http.StatusConflict, ""))
	assert.NotErrorIs(t, err, errors.New("booking not found"))
}
