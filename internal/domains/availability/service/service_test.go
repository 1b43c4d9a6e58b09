package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/infras/otel/mocks"
	"hotel/internal/domains/availability/model/dto"
	"hotel/internal/domains/availability/service"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/failure"
	"hotel/shared/stay"
)

func day(d int) time.Time {
	return time.Date(2025, 7, d, 0, 0, 0, 0, time.UTC)
}

func room(id, roomType string, price int64, maxGuests int) roomModel.Room {
	return roomModel.Room{
		ID:        id,
		RoomType:  roomType,
		Price:     decimal.NewFromInt(price),
		MaxGuests: maxGuests,
		Status:    roomModel.StatusAvailable,
	}
}

func booking(roomID, status string, in, out int) bookingModel.Booking {
	return bookingModel.Booking{
		ID:            roomID + "-booking",
		RoomID:        roomID,
		CheckInDate:   day(in),
		CheckOutDate:  day(out),
		Adults:        1,
		BookingStatus: status,
	}
}

func ids(rooms []roomModel.Room) []string {
	res := make([]string, len(rooms))
	for i, r := range rooms {
		res[i] = r.ID
	}

	return res
}

func TestFilter(t *testing.T) {
	dates := stay.DateRange{CheckIn: day(10), CheckOut: day(12)}

	tests := []struct {
		name     string
		rooms    []roomModel.Room
		bookings []bookingModel.Booking
		guests   int
		want     []string
	}{
		{
			name:     "adjacent stays do not conflict",
			rooms:    []roomModel.Room{room("r1", "Deluxe", 75, 2)},
			bookings: []bookingModel.Booking{booking("r1", bookingModel.StatusConfirmed, 8, 10), booking("r1", bookingModel.StatusPending, 12, 14)},
			guests:   2,
			want:     []string{"r1"},
		},
		{
			name:     "one shared night blocks the room",
			rooms:    []roomModel.Room{room("r1", "Deluxe", 75, 2)},
			bookings: []bookingModel.Booking{booking("r1", bookingModel.StatusPending, 11, 13)},
			guests:   2,
			want:     []string{},
		},
		{
			name:     "cancelled bookings are ignored",
			rooms:    []roomModel.Room{room("r1", "Deluxe", 75, 2)},
			bookings: []bookingModel.Booking{booking("r1", bookingModel.StatusCancelled, 10, 12)},
			guests:   2,
			want:     []string{"r1"},
		},
		{
			name:   "capacity boundary",
			rooms:  []roomModel.Room{room("r1", "Deluxe", 75, 2), room("r2", "Family", 95, 3)},
			guests: 3,
			want:   []string{"r2"},
		},
		{
			name:   "party that exactly fits",
			rooms:  []roomModel.Room{room("r1", "Deluxe", 75, 2)},
			guests: 2,
			want:   []string{"r1"},
		},
		{
			name: "not available rooms are skipped",
			rooms: []roomModel.Room{
				{ID: "r1", RoomType: "Deluxe", Price: decimal.NewFromInt(75), MaxGuests: 2, Status: roomModel.StatusNotAvailable},
			},
			guests: 1,
			want:   []string{},
		},
		{
			name: "cheapest first then type then id",
			rooms: []roomModel.Room{
				room("r4", "Suite", 200, 4),
				room("r3", "Deluxe", 120, 2),
				room("r2", "Classic", 120, 2),
				room("r1", "Classic", 120, 2),
				room("r5", "Single", 50, 2),
			},
			guests: 1,
			want:   []string{"r5", "r1", "r2", "r3", "r4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.Filter(tt.rooms, tt.bookings, dates, tt.guests)

			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestAvailabilityService_Search(t *testing.T) {
	today := func() time.Time { return time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC) }

	newService := func(t *testing.T) (*roomMocks.MockRoom, *bookingMocks.MockBooking, service.Availability) {
		ctrl := gomock.NewController(t)
		rooms := roomMocks.NewMockRoom(ctrl)
		bookings := bookingMocks.NewMockBooking(ctrl)

		return rooms, bookings, service.New(rooms, bookings, mocks.NewOtel(), service.WithClock(today))
	}

	t.Run("prices each room for the stay", func(t *testing.T) {
		rooms, bookings, svc := newService(t)

		rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomModel.Room{room("r1", "Deluxe", 75, 2)}, nil)
		bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := svc.Search(context.Background(), dto.SearchRequest{CheckInDate: "2025-07-01", CheckOutDate: "2025-07-03", Adults: 2})

		require.NoError(t, err)
		assert.True(t, res.Available)
		require.Len(t, res.Rooms, 1)
		assert.Equal(t, 2, res.Nights)
		assert.True(t, decimal.NewFromInt(150).Equal(res.Rooms[0].TotalPrice))
		assert.Equal(t, "150.00 OMR", res.Rooms[0].FormattedTotal)
	})

	t.Run("no rooms is not an error", func(t *testing.T) {
		rooms, bookings, svc := newService(t)

		rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomModel.Room{room("r1", "Deluxe", 75, 2)}, nil)
		bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := svc.Search(context.Background(), dto.SearchRequest{CheckInDate: "2025-07-01", CheckOutDate: "2025-07-03", Adults: 2, Children: 1})

		require.NoError(t, err)
		assert.False(t, res.Available)
		assert.Equal(t, dto.MessageNoRooms, res.Message)
		assert.Empty(t, res.Rooms)
	})

	invalid := []struct {
		name    string
		req     dto.SearchRequest
		message string
	}{
		{
			name:    "missing dates",
			req:     dto.SearchRequest{CheckInDate: "2025-07-01", Adults: 1},
			message: stay.MessageMissingDates,
		},
		{
			name:    "check-out not after check-in is reported before the past date",
			req:     dto.SearchRequest{CheckInDate: "2025-06-01", CheckOutDate: "2025-06-01", Adults: 0},
			message: stay.MessageCheckOutNotAfterIn,
		},
		{
			name:    "check-in in the past",
			req:     dto.SearchRequest{CheckInDate: "2025-06-14", CheckOutDate: "2025-06-16", Adults: 1},
			message: stay.MessageCheckInInPast,
		},
		{
			name:    "no adults",
			req:     dto.SearchRequest{CheckInDate: "2025-06-15", CheckOutDate: "2025-06-16"},
			message: dto.MessageAdultRequired,
		},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, _, svc := newService(t)

			_, err := svc.Search(context.Background(), tt.req)

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.EqualError(t, err, tt.message)
		})
	}

	t.Run("booking fetch failure fails the search", func(t *testing.T) {
		rooms, bookings, svc := newService(t)

		rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomModel.Room{room("r1", "Deluxe", 75, 2)}, nil)
		bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))

		res, err := svc.Search(context.Background(), dto.SearchRequest{CheckInDate: "2025-07-01", CheckOutDate: "2025-07-03", Adults: 1})

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
		assert.Empty(t, res.Rooms)
	})
}
