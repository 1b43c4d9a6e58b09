package dto_test

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
)

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := dto.CreateBookingRequest{
		RoomID:       "r1",
		CustomerName: "  Omar  ",
		Email:        " omar@example.com ",
		Phone:        "+968 9123 4567",
		CheckInDate:  "2025-07-01",
		CheckOutDate: "2025-07-04",
		Adults:       1,
		Children:     1,
	}

	dates, err := req.Stay()
	require.NoError(t, err)

	booking := req.ToModel("", dates, decimal.NewFromInt(225))

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "Omar", booking.CustomerName)
	assert.Equal(t, "omar@example.com", booking.Email)
	assert.Equal(t, model.StatusPending, booking.BookingStatus)
	assert.Equal(t, 2, booking.Guests())
	assert.Equal(t, 3, booking.Stay().Nights())
}

func TestCreateBookingRequest_Stay(t *testing.T) {
	req := dto.CreateBookingRequest{CheckInDate: "2025-07-01"}

	_, err := req.Stay()
	assert.EqualError(t, err, "Please select both check-in and check-out dates")

	req.CheckOutDate = "07/03/2025"

	_, err = req.Stay()
	assert.Error(t, err)
}

func TestLookupRequest_Validate(t *testing.T) {
	err := dto.LookupRequest{}.Validate()
	assert.EqualError(t, err, dto.MessageLookupTerm)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	assert.Error(t, dto.LookupRequest{Email: "  ", Status: model.StatusPending}.Validate())
	assert.Error(t, dto.LookupRequest{Email: "a@x.com", Status: "Archived"}.Validate())

	assert.NoError(t, dto.LookupRequest{Email: "a@x.com"}.Validate())
	assert.NoError(t, dto.LookupRequest{ID: "b1", Status: model.StatusConfirmed}.Validate())
}

func TestLookupRequest_Filter(t *testing.T) {
	assert.Empty(t, dto.LookupRequest{}.Filter().Filters)

	filter := dto.LookupRequest{Email: "a@x.com", ID: "b1", Status: model.StatusConfirmed}.Filter()
	require.Len(t, filter.Filters, 3)

	email, _ := filter.Filters[0].(gDto.Filter)
	assert.Equal(t, gDto.FilterOperatorLike, email.Operator)
	assert.Equal(t, model.TableName, email.Table)
}

func TestBookingResponse_FromModel(t *testing.T) {
	booking := model.BookingWithRoom{
		Booking: model.Booking{
			ID:            "b1",
			CheckInDate:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			CheckOutDate:  time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC),
			TotalPrice:    decimal.NewFromInt(150),
			BookingStatus: model.StatusPending,
		},
	}

	var res dto.BookingResponse
	res.FromModel(booking)

	assert.Equal(t, model.RoomTypeUnknown, res.RoomType)
	assert.Equal(t, "2025-07-01", res.CheckInDate)
	assert.Equal(t, 2, res.Nights)

	booking.RoomType = sql.NullString{String: "Family", Valid: true}
	res.FromModel(booking)

	assert.Equal(t, "Family", res.RoomType)
}

func TestBooking_CanTransitionTo(t *testing.T) {
	pending := model.Booking{BookingStatus: model.StatusPending}
	cancelled := model.Booking{BookingStatus: model.StatusCancelled}

	assert.True(t, pending.CanTransitionTo(model.StatusConfirmed))
	assert.True(t, pending.IsActive())
	assert.False(t, cancelled.CanTransitionTo(model.StatusPending))
	assert.False(t, cancelled.IsActive())
}
