package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"tourism/infras/otel"
	"tourism/infras/postgres"
	"tourism/internal/domains/boat/model"
	"tourism/shared/constant"
	gDto "tourism/shared/dto"
	gRepo "tourism/shared/repository"
	"tourism/shared/timezone"

	"github.com/jmoiron/sqlx"
)

type Boat interface {
	Insert(ctx context.Context, model model.Boat) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Boat, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (model.Boat, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Boat, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DecrementSlotTx(ctx context.Context, sqltx *sqlx.Tx, id string) (bool, error)
	IncrementSlotTx(ctx context.Context, sqltx *sqlx.Tx, id string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Boat]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Boat {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Boat](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// DecrementSlotTx takes one slot if any is left. It reports false when the boat
// is fully booked or inactive.
func (r *repositoryImpl) DecrementSlotTx(ctx context.Context, sqltx *sqlx.Tx, id string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".boat.DecrementSlotTx")
	defer scope.End()

	query := fmt.Sprintf(
		"UPDATE %s SET %s = %s - 1, %s = :now WHERE %s = :id AND %s > 0 AND %s = TRUE",
		model.TableName, model.FieldAvailableSlots, model.FieldAvailableSlots, constant.FieldModifiedAt,
		model.FieldID, model.FieldAvailableSlots, model.FieldActive,
	)

	affected, err := r.ExecTx(ctx, sqltx, query, map[string]any{"id": id, "now": timezone.Now()})
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return affected == 1, nil
}

// IncrementSlotTx gives a slot back, capped at total_slots.
func (r *repositoryImpl) IncrementSlotTx(ctx context.Context, sqltx *sqlx.Tx, id string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".boat.IncrementSlotTx")
	defer scope.End()

	query := fmt.Sprintf(
		"UPDATE %s SET %s = LEAST(%s + 1, %s), %s = :now WHERE %s = :id",
		model.TableName, model.FieldAvailableSlots, model.FieldAvailableSlots, model.FieldTotalSlots,
		constant.FieldModifiedAt, model.FieldID,
	)

	_, err := r.ExecTx(ctx, sqltx, query, map[string]any{"id": id, "now": timezone.Now()})

	return err //nolint:wrapcheck
}
