package stay_test

import (
	"net/http"
	"testing"
	"time"

	"hotel/shared/failure"
	"hotel/shared/stay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, in, out string) stay.DateRange {
	t.Helper()

	r, err := stay.Parse(in, out)
	require.NoError(t, err)

	return r
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		out     string
		wantErr string
	}{
		{name: "valid range", in: "2025-07-01", out: "2025-07-03"},
		{name: "missing check-in", in: "", out: "2025-07-03", wantErr: stay.MessageMissingDates},
		{name: "missing check-out", in: "2025-07-01", out: "  ", wantErr: stay.MessageMissingDates},
		{name: "malformed check-in", in: "01/07/2025", out: "2025-07-03", wantErr: stay.MessageInvalidCheckIn},
		{name: "malformed check-out", in: "2025-07-01", out: "2025-13-03", wantErr: stay.MessageInvalidCheckOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := stay.Parse(tt.in, tt.out)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "2025-07-01..2025-07-03", r.String())
			assert.Equal(t, 2, r.Nights())
		})
	}
}

func TestValidate(t *testing.T) {
	today := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		in      string
		out     string
		wantErr string
	}{
		{name: "future range", in: "2025-07-01", out: "2025-07-03"},
		{name: "check-in today is allowed", in: "2025-06-15", out: "2025-06-16"},
		{name: "same day range", in: "2025-07-01", out: "2025-07-01", wantErr: stay.MessageCheckOutNotAfterIn},
		{name: "reversed range", in: "2025-07-03", out: "2025-07-01", wantErr: stay.MessageCheckOutNotAfterIn},
		{name: "check-in yesterday", in: "2025-06-14", out: "2025-06-16", wantErr: stay.MessageCheckInInPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mustParse(t, tt.in, tt.out).Validate(today)

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestOverlaps(t *testing.T) {
	booked := mustParse(t, "2025-06-01", "2025-06-05")

	tests := []struct {
		name     string
		in       string
		out      string
		expected bool
	}{
		{name: "adjacent after is free", in: "2025-06-05", out: "2025-06-08", expected: false},
		{name: "adjacent before is free", in: "2025-05-28", out: "2025-06-01", expected: false},
		{name: "one shared night conflicts", in: "2025-06-04", out: "2025-06-06", expected: true},
		{name: "contained range conflicts", in: "2025-06-02", out: "2025-06-03", expected: true},
		{name: "enclosing range conflicts", in: "2025-05-30", out: "2025-06-10", expected: true},
		{name: "identical range conflicts", in: "2025-06-01", out: "2025-06-05", expected: true},
		{name: "far away is free", in: "2025-08-01", out: "2025-08-05", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			search := mustParse(t, tt.in, tt.out)

			assert.Equal(t, tt.expected, search.Overlaps(booked))
			assert.Equal(t, tt.expected, booked.Overlaps(search), "overlap must be symmetric")
		})
	}
}
