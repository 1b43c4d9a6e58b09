package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"hotel/infras/otel"
	"hotel/internal/domains/availability/model/dto"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/stay"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Availability interface {
	Search(ctx context.Context, req dto.SearchRequest) (dto.SearchResponse, error)
}

type serviceImpl struct {
	rooms    roomRepo.Room
	bookings bookingRepo.Booking
	otel     otel.Otel
	now      func() time.Time
}

type Option func(*serviceImpl)

// WithClock replaces the clock used for the "check-in in the past" rule.
func WithClock(now func() time.Time) Option {
	return func(s *serviceImpl) {
		s.now = now
	}
}

func New(rooms roomRepo.Room, bookings bookingRepo.Booking, otel otel.Otel, opts ...Option) Availability {
	svc := &serviceImpl{
		rooms:    rooms,
		bookings: bookings,
		otel:     otel,
		now:      timezone.Now,
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc
}

// Search lists the available rooms that can host the party for the whole stay, cheapest first.
// A room is excluded when an active booking overlaps the stay or it is too small.
func (s *serviceImpl) Search(ctx context.Context, req dto.SearchRequest) (res dto.SearchResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.Search")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	dates, err := stay.Parse(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = dates.Validate(s.now()); err != nil {
		return res, err //nolint:wrapcheck
	}

	if req.Adults < 1 {
		return res, failure.BadRequestFromString(dto.MessageAdultRequired) //nolint:wrapcheck
	}

	rooms, err := s.rooms.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldStatus,
				Value:    roomModel.StatusAvailable,
				Operator: gDto.FilterOperatorEq,
				Table:    roomModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	bookings, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldBookingStatus,
				Value:    bookingModel.ActiveStatuses,
				Operator: gDto.FilterOperatorIn,
				Table:    bookingModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	available := Filter(rooms, bookings, dates, req.Guests())

	scope.SetAttributes(map[string]any{
		"search.stay":      dates.String(),
		"search.guests":    req.Guests(),
		"search.available": len(available),
	})

	res.FromModels(available, dates, req.Guests())

	return res, nil
}

// Filter applies the availability rules to already loaded rooms and bookings and returns the
// matches ordered by price, then room type, then id.
func Filter(rooms []roomModel.Room, bookings []bookingModel.Booking, dates stay.DateRange, guests int) []roomModel.Room {
	blocked := map[string]bool{}

	for _, booking := range bookings {
		if booking.IsActive() && booking.Stay().Overlaps(dates) {
			blocked[booking.RoomID] = true
		}
	}

	available := make([]roomModel.Room, 0, len(rooms))

	for _, room := range rooms {
		if !room.IsAvailable() || blocked[room.ID] || !room.Fits(guests) {
			continue
		}

		available = append(available, room)
	}

	slices.SortFunc(available, func(a, b roomModel.Room) int {
		if c := a.Price.Cmp(b.Price); c != 0 {
			return c
		}

		if c := cmp.Compare(a.RoomType, b.RoomType); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})

	return available
}
