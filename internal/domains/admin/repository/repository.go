package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/admin/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/redis/go-redis/v9"
)

type Admin interface {
	Insert(ctx context.Context, model model.Admin) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Admin, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Admin]
}

type kvRepositoryImpl struct {
	gRepo.KVRepository[model.Admin]
}

func New(cfg *config.Config, db *postgres.Connection, client *redis.Client, otel otel.Otel) Admin {
	if cfg.Storage.Driver == constant.StorageDriverKV {
		return NewKV(cfg.Storage.KV.Prefix, client, otel)
	}

	return NewPostgres(db, otel)
}

func NewPostgres(db *postgres.Connection, otel otel.Otel) Admin {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Admin](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func NewKV(prefix string, client *redis.Client, otel otel.Otel) Admin {
	return &kvRepositoryImpl{
		KVRepository: gRepo.NewKVRepository[model.Admin](model.EntityName, model.TableName, model.FieldID, prefix, client, otel),
	}
}
