package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/redis/go-redis/v9"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	GetWithRoom(ctx context.Context, filter gDto.FilterGroup) (model.BookingWithRoom, error)
	GetAllWithRoom(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingWithRoom, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	joined gRepo.Repository[model.BookingWithRoom]
}

// New picks the backend configured by STORAGE_DRIVER.
func New(cfg *config.Config, db *postgres.Connection, client *redis.Client, otel otel.Otel) Booking {
	if cfg.Storage.Driver == constant.StorageDriverKV {
		return NewKV(cfg.Storage.KV.Prefix, client, otel)
	}

	return NewPostgres(db, otel)
}

func NewPostgres(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		joined:     gRepo.NewRepository[model.BookingWithRoom](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) GetWithRoom(ctx context.Context, filter gDto.FilterGroup) (model.BookingWithRoom, error) {
	return r.joined.Get(ctx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) GetAllWithRoom(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingWithRoom, error) {
	return r.joined.GetAll(ctx, params, filter) //nolint:wrapcheck
}

// kvRepositoryImpl joins rooms in memory since the key-value store has no joins.
type kvRepositoryImpl struct {
	gRepo.KVRepository[model.Booking]
	rooms gRepo.KVRepository[roomModel.Room]
}

func NewKV(prefix string, client *redis.Client, otel otel.Otel) Booking {
	return &kvRepositoryImpl{
		KVRepository: gRepo.NewKVRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, prefix, client, otel),
		rooms:        gRepo.NewKVRepository[roomModel.Room](roomModel.EntityName, roomModel.TableName, roomModel.FieldID, prefix, client, otel),
	}
}

func (r *kvRepositoryImpl) GetWithRoom(ctx context.Context, filter gDto.FilterGroup) (model.BookingWithRoom, error) {
	booking, err := r.Get(ctx, filter)
	if err != nil || booking.ID == constant.Empty {
		return model.BookingWithRoom{Booking: booking}, err //nolint:wrapcheck
	}

	joined, err := r.withRooms(ctx, []model.Booking{booking})
	if err != nil {
		return model.BookingWithRoom{}, err
	}

	return joined[0], nil
}

func (r *kvRepositoryImpl) GetAllWithRoom(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingWithRoom, error) {
	bookings, err := r.GetAll(ctx, params, filter)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return r.withRooms(ctx, bookings)
}

func (r *kvRepositoryImpl) withRooms(ctx context.Context, bookings []model.Booking) ([]model.BookingWithRoom, error) {
	ids := make([]string, 0, len(bookings))
	for _, booking := range bookings {
		ids = append(ids, booking.RoomID)
	}

	rooms := map[string]roomModel.Room{}

	if len(ids) > 0 {
		found, err := r.rooms.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{Field: roomModel.FieldID, Value: ids, Operator: gDto.FilterOperatorIn},
			},
		})
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		for _, room := range found {
			rooms[room.ID] = room
		}
	}

	joined := make([]model.BookingWithRoom, len(bookings))
	for i, booking := range bookings {
		joined[i].Booking = booking

		if room, ok := rooms[booking.RoomID]; ok {
			joined[i].RoomType.String, joined[i].RoomType.Valid = room.RoomType, true
			joined[i].RoomPrice.Decimal, joined[i].RoomPrice.Valid = room.Price, true
			joined[i].RoomImageURL.String, joined[i].RoomImageURL.Valid = room.ImageURL, true
		}
	}

	return joined, nil
}
