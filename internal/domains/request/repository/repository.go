package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"rentro/infras/otel"
	"rentro/infras/postgres"
	"rentro/internal/domains/request/model"
	gDto "rentro/shared/dto"
	gRepo "rentro/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Request interface {
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Request) error
	ExistTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Request, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Request, error)
	Update(ctx context.Context, mod map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Request]
}

func New(db *postgres.Connection, otel otel.Otel) Request {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Request](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
