package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"tourism/infras/otel"
	"tourism/infras/postgres"
	"tourism/internal/domains/entrancefee/model"
	gDto "tourism/shared/dto"
	gRepo "tourism/shared/repository"

	"github.com/jmoiron/sqlx"
)

type EntranceFee interface {
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.EntranceFee) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.EntranceFee, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.EntranceFee, error)
	GetAllTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) ([]model.EntranceFee, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.EntranceFee]
}

func New(db *postgres.Connection, otel otel.Otel) EntranceFee {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.EntranceFee](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
