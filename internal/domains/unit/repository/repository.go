package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"tourism/infras/otel"
	"tourism/infras/postgres"
	"tourism/internal/domains/unit/model"
	gDto "tourism/shared/dto"
	gRepo "tourism/shared/repository"
)

type Unit interface {
	Insert(ctx context.Context, model model.Unit) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Unit, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Unit, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Unit]
}

func New(db *postgres.Connection, otel otel.Otel) Unit {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Unit](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
