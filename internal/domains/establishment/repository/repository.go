package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"tourism/infras/otel"
	"tourism/infras/postgres"
	"tourism/internal/domains/establishment/model"
	gDto "tourism/shared/dto"
	gRepo "tourism/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Establishment interface {
	Insert(ctx context.Context, model model.Establishment) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Establishment) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Establishment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Establishment, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Establishment]
}

func New(db *postgres.Connection, otel otel.Otel) Establishment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Establishment](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
