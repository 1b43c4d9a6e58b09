package model

import (
	"cmp"
	"slices"
	"strings"
	"time"

	bookingModel "hotel/internal/domains/booking/model"
)

const (
	EntityName = "customer"

	// RecentBookingsLimit caps the bookings embedded in a customer list entry.
	RecentBookingsLimit = 3
)

// Customer is derived from bookings; there is no customer table. Bookings are grouped by
// lower-cased email and kept newest first.
type Customer struct {
	Key      string
	Name     string
	Email    string
	Phone    string
	Bookings []bookingModel.BookingWithRoom
}

func (c Customer) LastBookingAt() time.Time {
	if len(c.Bookings) == 0 {
		return time.Time{}
	}

	return c.Bookings[0].CreatedAt
}

func (c Customer) Recent(limit int) []bookingModel.BookingWithRoom {
	return c.Bookings[:min(limit, len(c.Bookings))]
}

func Key(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Aggregate groups bookings into customers. Contact details come from each customer's most
// recent booking, and customers are ordered by their most recent booking.
func Aggregate(bookings []bookingModel.BookingWithRoom) []Customer {
	sorted := slices.Clone(bookings)
	slices.SortStableFunc(sorted, newestFirst)

	index := map[string]int{}
	customers := []Customer{}

	for _, booking := range sorted {
		key := Key(booking.Email)

		pos, ok := index[key]
		if !ok {
			pos = len(customers)
			index[key] = pos

			customers = append(customers, Customer{
				Key:   key,
				Name:  booking.CustomerName,
				Email: booking.Email,
				Phone: booking.Phone,
			})
		}

		customers[pos].Bookings = append(customers[pos].Bookings, booking)
	}

	return customers
}

func newestFirst(a, b bookingModel.BookingWithRoom) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}

	return cmp.Compare(b.ID, a.ID)
}
