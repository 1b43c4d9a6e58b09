package model

import (
	"database/sql"
	"slices"
	"time"

	"hotel/shared/model"
	"hotel/shared/stay"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldRoomID          = "room_id"
	FieldCustomerName    = "customer_name"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldCNICPassport    = "cnic_passport"
	FieldSpecialRequests = "special_requests"
	FieldCheckInDate     = "check_in_date"
	FieldCheckOutDate    = "check_out_date"
	FieldAdults          = "adults"
	FieldChildren        = "children"
	FieldTotalPrice      = "total_price"
	FieldBookingStatus   = "booking_status"

	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"

	// RoomTypeUnknown is shown for bookings whose room has been deleted.
	RoomTypeUnknown = "N/A"
)

// ActiveStatuses block a room for the nights they cover.
var ActiveStatuses = []string{StatusPending, StatusConfirmed}

var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
}

type Booking struct {
	ID              string          `db:"id"               json:"id"`
	RoomID          string          `db:"room_id"          json:"room_id"`
	CustomerName    string          `db:"customer_name"    json:"customer_name"`
	Email           string          `db:"email"            json:"email"`
	Phone           string          `db:"phone"            json:"phone"`
	CNICPassport    string          `db:"cnic_passport"    json:"cnic_passport"`
	SpecialRequests string          `db:"special_requests" json:"special_requests"`
	CheckInDate     time.Time       `db:"check_in_date"    json:"check_in_date"`
	CheckOutDate    time.Time       `db:"check_out_date"   json:"check_out_date"`
	Adults          int             `db:"adults"           json:"adults"`
	Children        int             `db:"children"         json:"children"`
	TotalPrice      decimal.Decimal `db:"total_price"      json:"total_price"`
	BookingStatus   string          `db:"booking_status"   json:"booking_status"`
	model.Metadata
}

func (b Booking) Stay() stay.DateRange {
	return stay.DateRange{CheckIn: b.CheckInDate, CheckOut: b.CheckOutDate}
}

func (b Booking) Guests() int {
	return b.Adults + b.Children
}

func (b Booking) IsActive() bool {
	return b.BookingStatus == StatusPending || b.BookingStatus == StatusConfirmed
}

// CanTransitionTo reports whether status may follow the current one. Cancelled is terminal.
func (b Booking) CanTransitionTo(status string) bool {
	return slices.Contains(transitions[b.BookingStatus], status)
}

// BookingWithRoom is a booking joined with the room it references. The room columns are
// NULL when the room has been deleted.
type BookingWithRoom struct {
	Booking
	RoomType     sql.NullString      `db:"room_type"      table:"rooms"`
	RoomPrice    decimal.NullDecimal `db:"room_price"     table:"rooms" column:"price"`
	RoomImageURL sql.NullString      `db:"room_image_url" table:"rooms" column:"image_url"`
}

func (BookingWithRoom) GetJoinQuery() string {
	return "LEFT JOIN rooms ON rooms.id = bookings.room_id"
}

func (b BookingWithRoom) RoomTypeOrUnknown() string {
	if !b.RoomType.Valid || b.RoomType.String == "" {
		return RoomTypeUnknown
	}

	return b.RoomType.String
}
