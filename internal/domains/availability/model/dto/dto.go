package dto

import (
	"hotel/internal/domains/room/model"
	roomDto "hotel/internal/domains/room/model/dto"
	"hotel/shared/constant"
	"hotel/shared/pricing"
	"hotel/shared/stay"

	"github.com/shopspring/decimal"
)

const (
	MessageAdultRequired = "At least one adult is required"
	MessageNoRooms       = "Sorry, no rooms are available for the selected dates and guest count."
)

type SearchRequest struct {
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Adults       int    `json:"adults"`
	Children     int    `json:"children" validate:"min=0"`
}

func (s SearchRequest) Guests() int {
	return s.Adults + s.Children
}

// AvailableRoom is a room priced for the requested stay.
type AvailableRoom struct {
	roomDto.RoomResponse
	Nights         int             `json:"nights"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	FormattedTotal string          `json:"formatted_total"`
}

func (a *AvailableRoom) FromModel(room model.Room, dates stay.DateRange) {
	a.RoomResponse.FromModel(room)
	a.Nights = dates.Nights()
	a.TotalPrice = pricing.TotalPrice(room.Price, dates.CheckIn, dates.CheckOut)
	a.FormattedTotal = pricing.FormatCurrency(a.TotalPrice)
}

type SearchResponse struct {
	Available    bool            `json:"available"`
	Message      string          `json:"message,omitempty"`
	CheckInDate  string          `json:"check_in_date"`
	CheckOutDate string          `json:"check_out_date"`
	Nights       int             `json:"nights"`
	Guests       int             `json:"guests"`
	Rooms        []AvailableRoom `json:"rooms"`
}

func (s *SearchResponse) FromModels(rooms []model.Room, dates stay.DateRange, guests int) {
	s.CheckInDate = dates.CheckIn.Format(constant.DateOnlyFormat)
	s.CheckOutDate = dates.CheckOut.Format(constant.DateOnlyFormat)
	s.Nights = dates.Nights()
	s.Guests = guests
	s.Available = len(rooms) > 0

	if !s.Available {
		s.Message = MessageNoRooms
	}

	s.Rooms = make([]AvailableRoom, len(rooms))
	for i, room := range rooms {
		s.Rooms[i].FromModel(room, dates)
	}
}
