// Package stay models a requested or booked date range.
//
// Ranges are half-open: a guest occupies the nights from CheckIn up to, but not including,
// CheckOut. A stay that checks out on the day another checks in does not conflict with it.
package stay

import (
	"strings"
	"time"

	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/pricing"
	"hotel/shared/timezone"
)

const (
	MessageMissingDates       = "Please select both check-in and check-out dates"
	MessageCheckOutNotAfterIn = "Check-out date must be after check-in date"
	MessageCheckInInPast      = "Check-in date cannot be in the past"
	MessageInvalidCheckIn     = "Check-in date must use the YYYY-MM-DD format"
	MessageInvalidCheckOut    = "Check-out date must use the YYYY-MM-DD format"
)

type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// Parse reads both dates in YYYY-MM-DD form in the application timezone.
// It checks presence and format only; ordering is left to Validate and ValidateOrder.
func Parse(checkIn, checkOut string) (DateRange, error) {
	checkIn = strings.TrimSpace(checkIn)
	checkOut = strings.TrimSpace(checkOut)

	if checkIn == constant.Empty || checkOut == constant.Empty {
		return DateRange{}, failure.BadRequestFromString(MessageMissingDates)
	}

	in, err := timezone.Parse(constant.DateOnlyFormat, checkIn)
	if err != nil {
		return DateRange{}, failure.BadRequestFromString(MessageInvalidCheckIn)
	}

	out, err := timezone.Parse(constant.DateOnlyFormat, checkOut)
	if err != nil {
		return DateRange{}, failure.BadRequestFromString(MessageInvalidCheckOut)
	}

	return DateRange{CheckIn: in, CheckOut: out}, nil
}

// ValidateOrder requires check-out to fall on a later date than check-in.
func (r DateRange) ValidateOrder() error {
	if !timezone.CalendarDate(r.CheckOut).After(timezone.CalendarDate(r.CheckIn)) {
		return failure.BadRequestFromString(MessageCheckOutNotAfterIn)
	}

	return nil
}

// Validate applies the search preconditions against the given current date.
func (r DateRange) Validate(today time.Time) error {
	if err := r.ValidateOrder(); err != nil {
		return err
	}

	if timezone.CalendarDate(r.CheckIn).Before(timezone.CalendarDate(today)) {
		return failure.BadRequestFromString(MessageCheckInInPast)
	}

	return nil
}

// Overlaps reports whether the two ranges share at least one night.
func (r DateRange) Overlaps(other DateRange) bool {
	in, out := timezone.CalendarDate(r.CheckIn), timezone.CalendarDate(r.CheckOut)

	return in.Before(timezone.CalendarDate(other.CheckOut)) && timezone.CalendarDate(other.CheckIn).Before(out)
}

func (r DateRange) Nights() int {
	return pricing.NightsBetween(r.CheckIn, r.CheckOut)
}

func (r DateRange) String() string {
	return r.CheckIn.Format(constant.DateOnlyFormat) + ".." + r.CheckOut.Format(constant.DateOnlyFormat)
}
