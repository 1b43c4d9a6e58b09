package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/room/model"
	"hotel/shared/constant"
	gRepo "hotel/shared/repository"

	"github.com/redis/go-redis/v9"
)

// Room is the plain generic store. Rooms need no joins or extra queries.
type Room interface {
	gRepo.Store[model.Room]
}

// New picks the backend configured by STORAGE_DRIVER.
func New(cfg *config.Config, db *postgres.Connection, client *redis.Client, otel otel.Otel) Room {
	if cfg.Storage.Driver == constant.StorageDriverKV {
		return NewKV(cfg.Storage.KV.Prefix, client, otel)
	}

	return NewPostgres(db, otel)
}

func NewPostgres(db *postgres.Connection, otel otel.Otel) Room {
	repo := gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel)

	return &repo
}

func NewKV(prefix string, client *redis.Client, otel otel.Otel) Room {
	repo := gRepo.NewKVRepository[model.Room](model.EntityName, model.TableName, model.FieldID, prefix, client, otel)

	return &repo
}
