package dto

import (
	"time"

	bookingDto "hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/customer/model"
	"hotel/shared"
)

type CustomerResponse struct {
	Name          string                       `json:"name"`
	Email         string                       `json:"email"`
	Phone         string                       `json:"phone"`
	TotalBookings int                          `json:"total_bookings"`
	LastBookingAt time.Time                    `json:"last_booking_at"`
	Bookings      []bookingDto.BookingResponse `json:"bookings"`
}

// FromModel copies a customer, keeping at most limit bookings. A limit of zero keeps them all.
func (c *CustomerResponse) FromModel(customer model.Customer, limit int) {
	c.Name = customer.Name
	c.Email = customer.Email
	c.Phone = customer.Phone
	c.TotalBookings = len(customer.Bookings)
	c.LastBookingAt = customer.LastBookingAt()

	bookings := customer.Bookings
	if limit > 0 {
		bookings = customer.Recent(limit)
	}

	c.Bookings = make([]bookingDto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		c.Bookings[i].FromModel(booking)
	}
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(customers []model.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(customers))
	for i, customer := range customers {
		r.Customers[i].FromModel(customer, model.RecentBookingsLimit)
	}
}
