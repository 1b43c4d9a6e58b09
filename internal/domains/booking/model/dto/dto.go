package dto

import (
	"strings"

	"hotel/internal/domains/booking/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/pricing"
	"hotel/shared/stay"
	"hotel/shared/timezone"
	"hotel/shared/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MessageNameRequired = "Please enter your full name"
	MessageInvalidEmail = "Please enter a valid email address"
	MessageInvalidPhone = "Please enter a valid phone number"
	MessageLookupTerm   = "Please enter your email address or booking reference"
)

type CreateBookingRequest struct {
	RoomID          string `json:"room_id"          validate:"required"`
	CustomerName    string `json:"customer_name"    validate:"max=100"`
	Email           string `json:"email"            validate:"max=100"`
	Phone           string `json:"phone"            validate:"max=30"`
	CNICPassport    string `json:"cnic_passport"    validate:"omitempty,max=50"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=1000"`
	CheckInDate     string `json:"check_in_date"    validate:"required"`
	CheckOutDate    string `json:"check_out_date"   validate:"required"`
	Adults          int    `json:"adults"           validate:"min=1"`
	Children        int    `json:"children"         validate:"min=0"`
}

// Stay parses the requested dates and checks that check-out follows check-in.
func (c *CreateBookingRequest) Stay() (stay.DateRange, error) {
	dates, err := stay.Parse(c.CheckInDate, c.CheckOutDate)
	if err != nil {
		return dates, err //nolint:wrapcheck
	}

	return dates, dates.ValidateOrder() //nolint:wrapcheck
}

// ValidateContact stops at the first invalid contact field, checking name, email and phone in that order.
func (c *CreateBookingRequest) ValidateContact() error {
	switch {
	case strings.TrimSpace(c.CustomerName) == "":
		return failure.BadRequestFromString(MessageNameRequired) //nolint:wrapcheck
	case !validator.IsValidEmail(strings.TrimSpace(c.Email)):
		return failure.BadRequestFromString(MessageInvalidEmail) //nolint:wrapcheck
	case !validator.IsValidPhone(strings.TrimSpace(c.Phone)):
		return failure.BadRequestFromString(MessageInvalidPhone) //nolint:wrapcheck
	}

	return nil
}

func (c *CreateBookingRequest) ToModel(user string, dates stay.DateRange, total decimal.Decimal) model.Booking {
	return model.Booking{
		ID:              uuid.NewString(),
		RoomID:          c.RoomID,
		CustomerName:    strings.TrimSpace(c.CustomerName),
		Email:           strings.TrimSpace(c.Email),
		Phone:           strings.TrimSpace(c.Phone),
		CNICPassport:    strings.TrimSpace(c.CNICPassport),
		SpecialRequests: strings.TrimSpace(c.SpecialRequests),
		CheckInDate:     dates.CheckIn,
		CheckOutDate:    dates.CheckOut,
		Adults:          c.Adults,
		Children:        c.Children,
		TotalPrice:      total,
		BookingStatus:   model.StatusPending,
		Metadata:        gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Confirmed Cancelled"`
}

// LookupRequest drives the customer "my bookings" search. An email or booking id fragment is
// required so the public endpoint never lists every booking.
type LookupRequest struct {
	Email  string `json:"email"`
	ID     string `json:"id"`
	Status string `json:"status" validate:"omitempty,oneof=Pending Confirmed Cancelled"`
}

func (l LookupRequest) Validate() error {
	if strings.TrimSpace(l.Email) == "" && strings.TrimSpace(l.ID) == "" {
		return failure.BadRequestFromString(MessageLookupTerm) //nolint:wrapcheck
	}

	return validator.ValidateStruct(&l)
}

func (l LookupRequest) Filter() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if email := strings.TrimSpace(l.Email); email != "" {
		filter.Add(gDto.Filter{
			Field:    model.FieldEmail,
			Value:    email,
			Operator: gDto.FilterOperatorLike,
			Table:    model.TableName,
		})
	}

	if id := strings.TrimSpace(l.ID); id != "" {
		filter.Add(gDto.Filter{
			Field:    model.FieldID,
			Value:    id,
			Operator: gDto.FilterOperatorLike,
			Table:    model.TableName,
		})
	}

	if l.Status != "" {
		filter.Add(gDto.Filter{
			Field:    model.FieldBookingStatus,
			Value:    l.Status,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return filter
}

type BookingResponse struct {
	ID              string          `json:"id"`
	RoomID          string          `json:"room_id"`
	RoomType        string          `json:"room_type"`
	CustomerName    string          `json:"customer_name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	CNICPassport    string          `json:"cnic_passport"`
	SpecialRequests string          `json:"special_requests"`
	CheckInDate     string          `json:"check_in_date"`
	CheckOutDate    string          `json:"check_out_date"`
	Nights          int             `json:"nights"`
	Adults          int             `json:"adults"`
	Children        int             `json:"children"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	FormattedTotal  string          `json:"formatted_total"`
	BookingStatus   string          `json:"booking_status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.BookingWithRoom) {
	r.ID = booking.ID
	r.RoomID = booking.RoomID
	r.RoomType = booking.RoomTypeOrUnknown()
	r.CustomerName = booking.CustomerName
	r.Email = booking.Email
	r.Phone = booking.Phone
	r.CNICPassport = booking.CNICPassport
	r.SpecialRequests = booking.SpecialRequests
	r.CheckInDate = booking.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = booking.CheckOutDate.Format(constant.DateOnlyFormat)
	r.Nights = pricing.NightsBetween(booking.CheckInDate, booking.CheckOutDate)
	r.Adults = booking.Adults
	r.Children = booking.Children
	r.TotalPrice = booking.TotalPrice
	r.FormattedTotal = pricing.FormatCurrency(booking.TotalPrice)
	r.BookingStatus = booking.BookingStatus
	r.Metadata.FromModel(booking.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.BookingWithRoom, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
