package service

import (
	"context"
	"fmt"
	"time"

	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/dashboard/model/dto"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Dashboard interface {
	Stats(ctx context.Context) (dto.StatsResponse, error)
}

type serviceImpl struct {
	rooms    roomRepo.Room
	bookings bookingRepo.Booking
	otel     otel.Otel
}

func New(rooms roomRepo.Room, bookings bookingRepo.Booking, otel otel.Otel) Dashboard {
	return &serviceImpl{
		rooms:    rooms,
		bookings: bookings,
		otel:     otel,
	}
}

// Stats runs the dashboard counters concurrently. Any failed count fails the whole call.
func (s *serviceImpl) Stats(ctx context.Context) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dashboard.Stats")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	group, gctx := errgroup.WithContext(ctx)

	count := func(target *int, name string, counter func(context.Context, gDto.FilterGroup) (int, error), filter gDto.FilterGroup) {
		group.Go(func() error {
			total, err := counter(gctx, filter)
			if err != nil {
				log.Error().Err(err).Str("stat", name).Msg("failed to count dashboard stat")

				return fmt.Errorf("failed to count %s: %w", name, err)
			}

			*target = total

			return nil
		})
	}

	count(&res.TotalRooms, "total rooms", s.rooms.Count, gDto.FilterGroup{})
	count(&res.AvailableRooms, "available rooms", s.rooms.Count, roomStatus(roomModel.StatusAvailable))
	count(&res.BookedRooms, "booked rooms", s.rooms.Count, roomStatus(roomModel.StatusNotAvailable))
	count(&res.TodaysBookings, "todays bookings", s.bookings.Count, createdSince(timezone.Today()))
	count(&res.PendingBookings, "pending bookings", s.bookings.Count, bookingStatus(bookingModel.StatusPending))
	count(&res.ConfirmedBookings, "confirmed bookings", s.bookings.Count, bookingStatus(bookingModel.StatusConfirmed))

	if err = group.Wait(); err != nil {
		return dto.StatsResponse{}, err //nolint:wrapcheck
	}

	return res, nil
}

func roomStatus(status string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: roomModel.FieldStatus, Value: status, Operator: gDto.FilterOperatorEq, Table: roomModel.TableName},
		},
	}
}

func bookingStatus(status string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldBookingStatus, Value: status, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
		},
	}
}

func createdSince(since time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: constant.FieldCreatedAt, Value: since, Operator: gDto.FilterOperatorGreaterEq, Table: bookingModel.TableName},
		},
	}
}
