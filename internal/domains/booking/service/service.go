package service

import (
	"context"
	"fmt"
	"strings"

	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/event"
	"hotel/shared/failure"
	"hotel/shared/pricing"
	"hotel/shared/timezone"
	"hotel/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	messageBookingNotFound = "booking not found"
	messageRoomNotFound    = "room not found"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Lookup(ctx context.Context, req dto.LookupRequest) ([]dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Booking
	roomRepo  roomRepo.Room
	publisher event.Publisher
	otel      otel.Otel
}

func New(repo repository.Booking, roomRepo roomRepo.Room, publisher event.Publisher, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:      repo,
		roomRepo:  roomRepo,
		publisher: publisher,
		otel:      otel,
	}
}

// Create books a room for the requested stay. Availability is not re-checked here; the
// search immediately before is the only guard against double booking.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	dates, err := req.Stay()
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = req.ValidateContact(); err != nil {
		return res, err //nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound(messageRoomNotFound) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking := req.ToModel(user, dates, pricing.TotalPrice(room.Price, dates.CheckIn, dates.CheckOut))

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	joined := model.BookingWithRoom{Booking: booking}
	joined.RoomType.String, joined.RoomType.Valid = room.RoomType, true
	joined.RoomPrice.Decimal, joined.RoomPrice.Valid = room.Price, true
	joined.RoomImageURL.String, joined.RoomImageURL.Valid = room.ImageURL, true

	scope.SetAttributes(map[string]any{"booking.id": booking.ID, "room.id": room.ID})
	scope.AddEvent("booking created")

	s.publish(ctx, event.BookingCreated, joined, constant.Empty, user)

	res.FromModel(joined)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAllWithRoom(ctx, qualifySort(req), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

// Lookup finds a customer's bookings by email or booking id fragment, newest first.
func (s *serviceImpl) Lookup(ctx context.Context, req dto.LookupRequest) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Lookup")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}

	models, err := s.repo.GetAllWithRoom(ctx, qualifySort(params), req.Filter())
	if err != nil {
		log.Error().Err(err).Msg("failed to look up bookings")

		return nil, fmt.Errorf("failed to look up bookings: %w", err)
	}

	res = make([]dto.BookingResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res, nil
}

// UpdateStatus moves a booking along Pending -> Confirmed -> Cancelled. Pending may also be
// cancelled directly. Cancelled bookings cannot change.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !booking.CanTransitionTo(req.Status) {
		msg := fmt.Sprintf("cannot change booking status from %s to %s", booking.BookingStatus, req.Status)

		return res, failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	fields := map[string]any{
		model.FieldBookingStatus: req.Status,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return res, fmt.Errorf("failed to update booking status: %w", err)
	}

	previous := booking.BookingStatus
	booking.BookingStatus = req.Status
	booking.ModifiedAt, booking.ModifiedBy = now, user

	s.publish(ctx, event.BookingStatusChanged, booking, previous, user)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	s.publish(ctx, event.BookingDeleted, booking, constant.Empty, user)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.BookingWithRoom, error) {
	booking, err := s.repo.GetWithRoom(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(messageBookingNotFound) // nolint:wrapcheck
	}

	return booking, nil
}

// publish is best effort: the booking is already stored, so a broker outage is only logged.
func (s *serviceImpl) publish(ctx context.Context, eventType event.Type, booking model.BookingWithRoom, previous, actor string) {
	evt := event.Booking{
		Type:           eventType,
		OccurredAt:     timezone.Now(),
		BookingID:      booking.ID,
		RoomID:         booking.RoomID,
		RoomType:       booking.RoomTypeOrUnknown(),
		CustomerName:   booking.CustomerName,
		Email:          booking.Email,
		CheckInDate:    booking.CheckInDate.Format(constant.DateOnlyFormat),
		CheckOutDate:   booking.CheckOutDate.Format(constant.DateOnlyFormat),
		TotalPrice:     pricing.FormatCurrency(booking.TotalPrice),
		Status:         booking.BookingStatus,
		PreviousStatus: previous,
		Actor:          actor,
	}

	if err := s.publisher.Publish(ctx, evt); err != nil {
		log.Error().Err(err).Str("booking", booking.ID).Str("type", string(eventType)).Msg("failed to publish booking event")
	}
}

// qualifySort prefixes a bare sort column with the bookings table so it stays unambiguous
// once rooms are joined in.
func qualifySort(params gDto.QueryParams) gDto.QueryParams {
	if params.SortBy == constant.Empty {
		params.SortBy = constant.FieldCreatedAt
		params.SortDir = gDto.SortDirDesc
	}

	if params.SortDir == constant.Empty {
		params.SortDir = gDto.SortDirAsc
	}

	if !strings.Contains(params.SortBy, ".") {
		params.SortBy = model.TableName + "." + params.SortBy
	}

	return params
}
