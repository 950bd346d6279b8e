package service

import (
	"context"
	"fmt"

	"tourism/config"
	"tourism/infras/otel"
	"tourism/infras/s3"
	estModel "tourism/internal/domains/establishment/model"
	estRepo "tourism/internal/domains/establishment/repository"
	"tourism/internal/domains/unit/model"
	"tourism/internal/domains/unit/model/dto"
	"tourism/internal/domains/unit/repository"
	"tourism/shared"
	"tourism/shared/cache"
	"tourism/shared/constant"
	gDto "tourism/shared/dto"
	"tourism/shared/failure"
	gRepo "tourism/shared/repository"
	"tourism/shared/upload"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetUnit    = "unit:get"
	cacheGetAllUnit = "unit:gets"
	cacheCountUnit  = "unit:count"
)

type Unit interface {
	Create(ctx context.Context, req dto.CreateUnitRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUnitsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.UnitResponse, error)
	Update(ctx context.Context, req dto.UpdateUnitRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo    repository.Unit
	estRepo estRepo.Establishment
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
	s3      s3.S3
}

func New(repo repository.Unit, estRepo estRepo.Establishment, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Unit {
	return &serviceImpl{
		repo:    repo,
		estRepo: estRepo,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
		s3:      s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUnitRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	establishment, err := s.ownedEstablishment(ctx, req.EstablishmentID)
	if err != nil {
		return constant.Empty, err
	}

	user, _ := shared.UserFromContext(ctx)
	bucket := s.cfg.External.S3.BucketName

	imageURL, objectName, err := upload.Image(ctx, s.s3, bucket, model.EntityName, req.ImageFile, req.Image)
	if err != nil {
		return constant.Empty, err
	}

	unit := req.ToModel(user, model.KindFor(establishment.Type), imageURL)

	if err = s.repo.Insert(ctx, unit); err != nil {
		log.Error().Err(err).Msg("failed to create unit")
		upload.Discard(ctx, s.s3, bucket, model.EntityName, objectName)

		return constant.Empty, fmt.Errorf("failed to create unit: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllUnit)
		shared.InvalidateCaches(c, s.cache, cacheCountUnit)
	}()

	return unit.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUnitsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUnit, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for units")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get units")

		return res, fmt.Errorf("failed to get units: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save units to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountUnit, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count units")

		return res, fmt.Errorf("failed to count units: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save unit count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UnitResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetUnit, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	unit, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(unit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save unit to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUnitRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if _, err = s.ownedEstablishment(ctx, current.EstablishmentID); err != nil {
		return err
	}

	user, _ := shared.UserFromContext(ctx)
	bucket := s.cfg.External.S3.BucketName
	updatedFields := shared.TransformFields(req, user)

	imageURL, objectName, err := upload.Image(ctx, s.s3, bucket, model.EntityName, req.ImageFile, req.Image)
	if err != nil {
		return err
	}

	if imageURL != constant.Empty {
		updatedFields[model.FieldImage] = imageURL
	}

	if len(updatedFields) <= 2 {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update unit")
		upload.Discard(ctx, s.s3, bucket, model.EntityName, objectName)

		return fmt.Errorf("failed to update unit: %w", err)
	}

	if imageURL != constant.Empty {
		upload.DiscardURL(ctx, s.s3, bucket, model.EntityName, current.Image)
	}

	go s.invalidate(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if _, err = s.ownedEstablishment(ctx, current.EstablishmentID); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if gRepo.IsForeignKeyViolation(err) {
			return failure.Conflict("unit still has bookings") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete unit")

		return fmt.Errorf("failed to delete unit: %w", err)
	}

	upload.DiscardURL(ctx, s.s3, s.cfg.External.S3.BucketName, model.EntityName, current.Image)

	go s.invalidate(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Unit, error) {
	unit, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get unit")

		return unit, fmt.Errorf("failed to get unit: %w", err)
	}

	if unit.ID == constant.Empty {
		return unit, failure.NotFound("unit not found") // nolint:wrapcheck
	}

	return unit, nil
}

func (s *serviceImpl) ownedEstablishment(ctx context.Context, establishmentID string) (estModel.Establishment, error) {
	establishment, err := s.estRepo.Get(ctx, shared.FilterByID(establishmentID, estModel.FieldID, estModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get establishment")

		return establishment, fmt.Errorf("failed to get establishment: %w", err)
	}

	if establishment.ID == constant.Empty {
		return establishment, failure.NotFound("establishment not found") // nolint:wrapcheck
	}

	user, _ := shared.UserFromContext(ctx)
	if !shared.IsAdmin(ctx) && !establishment.IsOwnedBy(user) {
		return establishment, failure.ResourceRestrictedError
	}

	return establishment, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetUnit, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete unit from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllUnit)
	shared.InvalidateCaches(ctx, s.cache, cacheCountUnit)
}
