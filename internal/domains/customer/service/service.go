package service

import (
	"context"
	"fmt"
	"strings"

	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/customer/model"
	"hotel/internal/domains/customer/model/dto"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
)

const messageCustomerNotFound = "customer not found"

type Customer interface {
	GetAll(ctx context.Context, params gDto.QueryParams, search string) (dto.GetCustomersResponse, error)
	Get(ctx context.Context, email string) (dto.CustomerResponse, error)
	Export(ctx context.Context) ([]byte, error)
}

type serviceImpl struct {
	bookings bookingRepo.Booking
	otel     otel.Otel
}

func New(bookings bookingRepo.Booking, otel otel.Otel) Customer {
	return &serviceImpl{
		bookings: bookings,
		otel:     otel,
	}
}

// GetAll lists customers ordered by their latest booking. search matches name or email.
func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, search string) (res dto.GetCustomersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".customer.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	customers, err := s.load(ctx, gDto.FilterGroup{})
	if err != nil {
		return res, err
	}

	if search = strings.ToLower(strings.TrimSpace(search)); search != constant.Empty {
		matched := customers[:0]

		for _, customer := range customers {
			if strings.Contains(strings.ToLower(customer.Name), search) || strings.Contains(customer.Key, search) {
				matched = append(matched, customer)
			}
		}

		customers = matched
	}

	res.FromModels(page(customers, params), len(customers), params.Limit)

	return res, nil
}

// Get returns one customer with every booking, matching the email case-insensitively.
func (s *serviceImpl) Get(ctx context.Context, email string) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".customer.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := model.Key(email)
	if key == constant.Empty {
		return res, failure.NotFound(messageCustomerNotFound) // nolint:wrapcheck
	}

	customers, err := s.load(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldEmail,
				Value:    key,
				Operator: gDto.FilterOperatorLike,
				Table:    bookingModel.TableName,
			},
		},
	})
	if err != nil {
		return res, err
	}

	for _, customer := range customers {
		if customer.Key == key {
			res.FromModel(customer, 0)

			return res, nil
		}
	}

	return res, failure.NotFound(messageCustomerNotFound) // nolint:wrapcheck
}

func (s *serviceImpl) load(ctx context.Context, filter gDto.FilterGroup) ([]model.Customer, error) {
	bookings, err := s.bookings.GetAllWithRoom(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	return model.Aggregate(bookings), nil
}

func page(customers []model.Customer, params gDto.QueryParams) []model.Customer {
	if !params.Paged() {
		return customers
	}

	offset := params.Offset()
	if offset >= len(customers) {
		return []model.Customer{}
	}

	return customers[offset:min(offset+params.Limit, len(customers))]
}
