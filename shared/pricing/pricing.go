// Package pricing computes stay lengths and prices and renders them for display.
package pricing

import (
	"math"
	"time"

	"hotel/config"
	"hotel/shared/constant"
	"hotel/shared/timezone"

	"github.com/shopspring/decimal"
)

const (
	defaultCurrency = "OMR"
	hoursPerDay     = 24
)

var currency = defaultCurrency

func init() {
	if code := config.Get().App.Hotel.Currency; code != "" {
		currency = code
	}
}

// Currency returns the configured currency code.
func Currency() string {
	return currency
}

// NightsBetween counts the nights between two dates. Only the calendar date of each value
// counts, and the order of the arguments does not matter. Two values on the same date give 0;
// callers reject such ranges before pricing them.
func NightsBetween(checkIn, checkOut time.Time) int {
	in := timezone.CalendarDate(checkIn)
	out := timezone.CalendarDate(checkOut)

	days := math.Abs(out.Sub(in).Hours()) / hoursPerDay

	return int(math.Ceil(days))
}

// TotalPrice multiplies the nightly rate by the number of nights.
func TotalPrice(rate decimal.Decimal, checkIn, checkOut time.Time) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(int64(NightsBetween(checkIn, checkOut))))
}

// FormatCurrency renders an amount as "150.00 OMR".
func FormatCurrency(amount decimal.Decimal) string {
	return FormatAmount(amount, currency)
}

func FormatAmount(amount decimal.Decimal, code string) string {
	return amount.StringFixed(2) + " " + code
}

// FormatDate renders the long form used on confirmations, e.g. "July 1, 2025".
func FormatDate(t time.Time) string {
	return t.Format(constant.LongDateFormat)
}
