package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slices"

	"tourism/config"
	"tourism/infras/otel"
	"tourism/internal/domains/entrancefee/model"
	"tourism/internal/domains/entrancefee/model/dto"
	"tourism/internal/domains/entrancefee/repository"
	estModel "tourism/internal/domains/establishment/model"
	estRepo "tourism/internal/domains/establishment/repository"
	"tourism/shared"
	"tourism/shared/cache"
	"tourism/shared/constant"
	gDto "tourism/shared/dto"
	"tourism/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const cacheGetResortFees = "entrance_fee:resort"

type EntranceFee interface {
	Seed(ctx context.Context, sqltx *sqlx.Tx, resortID string) error
	ListByResort(ctx context.Context, resortID string) (dto.GetEntranceFeesResponse, error)
	Update(ctx context.Context, req dto.UpdateEntranceFeeRequest, id string) error
	Quote(ctx context.Context, resortID string, guests model.GuestCounts) (dto.Quote, error)
}

type serviceImpl struct {
	repo    repository.EntranceFee
	estRepo estRepo.Establishment
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
}

func New(repo repository.EntranceFee, estRepo estRepo.Establishment, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) EntranceFee {
	return &serviceImpl{
		repo:    repo,
		estRepo: estRepo,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
	}
}

// Seed inserts the default price for every tier the resort does not have yet.
// Running it twice leaves the tiers untouched.
func (s *serviceImpl) Seed(ctx context.Context, sqltx *sqlx.Tx, resortID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Seed")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := shared.UserFromContext(ctx)
	if user == constant.Empty {
		user = constant.ContextSystem
	}

	existing, err := s.repo.GetAllTx(ctx, sqltx, resortFilter(resortID))
	if err != nil {
		return fmt.Errorf("failed to get entrance fees: %w", err)
	}

	defaults := dto.DefaultPrices(s.cfg)
	missing := make([]model.EntranceFee, 0, len(model.Tiers))

	for _, tier := range model.Tiers {
		found := slices.ContainsFunc(existing, func(fee model.EntranceFee) bool {
			return fee.Tier == tier
		})

		if !found {
			missing = append(missing, dto.NewEntranceFee(resortID, tier, defaults[tier], user))
		}
	}

	if len(missing) == 0 {
		return nil
	}

	if err = s.repo.InsertBulkTx(ctx, sqltx, missing); err != nil {
		log.Error().Err(err).Str("resort_id", resortID).Msg("failed to seed entrance fees")

		return fmt.Errorf("failed to seed entrance fees: %w", err)
	}

	log.Info().Str("resort_id", resortID).Int("tiers", len(missing)).Msg("seeded entrance fees")

	return nil
}

func (s *serviceImpl) ListByResort(ctx context.Context, resortID string) (res dto.GetEntranceFeesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByResort")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetResortFees, resortID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	if _, err = s.getResort(ctx, resortID); err != nil {
		return res, err
	}

	fees, err := s.fees(ctx, resortID)
	if err != nil {
		return res, err
	}

	res.FromModels(fees)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save entrance fees to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateEntranceFeeRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	fee, err := s.repo.Get(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to get entrance fee: %w", err)
	}

	if fee.ID == constant.Empty {
		return failure.NotFound("entrance fee not found") // nolint:wrapcheck
	}

	resort, err := s.getResort(ctx, fee.ResortID)
	if err != nil {
		return err
	}

	user, _ := shared.UserFromContext(ctx)
	if !shared.IsAdmin(ctx) && !resort.IsOwnedBy(user) {
		return failure.Forbidden("only the resort owner can change its entrance fees") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update entrance fee")

		return fmt.Errorf("failed to update entrance fee: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetResortFees, fee.ResortID)); err != nil {
			log.Error().Err(err).Msg("failed to delete entrance fee cache")
		}
	}()

	return nil
}

// Quote prices the guest mix against the resort's tiers.
func (s *serviceImpl) Quote(ctx context.Context, resortID string, guests model.GuestCounts) (res dto.Quote, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer scope.TraceIfError(err)

	fees, err := s.fees(ctx, resortID)
	if err != nil {
		return res, err
	}

	prices := make(map[string]int64, len(fees))
	for _, fee := range fees {
		prices[fee.Tier] = fee.Price
	}

	for _, tier := range model.Tiers {
		count := guests[tier]
		if count <= 0 {
			continue
		}

		price, ok := prices[tier]
		if !ok {
			return res, failure.UnprocessableEntity(fmt.Sprintf("entrance fee for tier %s is not configured", tier)) // nolint:wrapcheck
		}

		line := dto.FeeLine{
			Tier:     tier,
			Count:    count,
			Price:    price,
			Subtotal: price * int64(count),
		}

		res.Lines = append(res.Lines, line)
		res.Total += line.Subtotal
	}

	return res, nil
}

func (s *serviceImpl) fees(ctx context.Context, resortID string) ([]model.EntranceFee, error) {
	fees, err := s.repo.GetAll(ctx, gDto.QueryParams{}, resortFilter(resortID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get entrance fees")

		return nil, fmt.Errorf("failed to get entrance fees: %w", err)
	}

	slices.SortFunc(fees, func(a, b model.EntranceFee) int {
		return slices.Index(model.Tiers, a.Tier) - slices.Index(model.Tiers, b.Tier)
	})

	return fees, nil
}

func (s *serviceImpl) getResort(ctx context.Context, resortID string) (estModel.Establishment, error) {
	resort, err := s.estRepo.Get(ctx, shared.FilterByID(resortID, estModel.FieldID, estModel.TableName))
	if err != nil {
		return resort, fmt.Errorf("failed to get resort: %w", err)
	}

	if resort.ID == constant.Empty || resort.Type != estModel.TypeResort {
		return resort, failure.NotFound("resort not found") // nolint:wrapcheck
	}

	return resort, nil
}

func resortFilter(resortID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldResortID,
				Operator: gDto.FilterOperatorEq,
				Value:    resortID,
				Table:    model.TableName,
			},
		},
	}
}
