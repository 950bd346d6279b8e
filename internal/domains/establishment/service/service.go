package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"tourism/config"
	"tourism/infras/otel"
	"tourism/infras/s3"
	feeService "tourism/internal/domains/entrancefee/service"
	"tourism/internal/domains/establishment/model"
	"tourism/internal/domains/establishment/model/dto"
	"tourism/internal/domains/establishment/repository"
	userModel "tourism/internal/domains/user/model"
	userRepo "tourism/internal/domains/user/repository"
	"tourism/shared"
	"tourism/shared/cache"
	"tourism/shared/constant"
	gDto "tourism/shared/dto"
	"tourism/shared/failure"
	gRepo "tourism/shared/repository"
	"tourism/shared/upload"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetEstablishment    = "establishment:get"
	cacheGetAllEstablishment = "establishment:gets"
	cacheCountEstablishment  = "establishment:count"
)

type Establishment interface {
	Create(ctx context.Context, req dto.CreateEstablishmentRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetEstablishmentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.EstablishmentResponse, error)
	Update(ctx context.Context, req dto.UpdateEstablishmentRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Establishment
	userRepo   userRepo.User
	fees       feeService.EntranceFee
	transactor gRepo.Transactor
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	s3         s3.S3
}

func New(
	repo repository.Establishment,
	userRepo userRepo.User,
	fees feeService.EntranceFee,
	transactor gRepo.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Establishment {
	return &serviceImpl{
		repo:       repo,
		userRepo:   userRepo,
		fees:       fees,
		transactor: transactor,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		s3:         s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateEstablishmentRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := shared.UserFromContext(ctx)

	ownerID, err := s.resolveOwner(ctx, req)
	if err != nil {
		return constant.Empty, err
	}

	bucket := s.cfg.External.S3.BucketName

	imageURL, objectName, err := upload.Image(ctx, s.s3, bucket, model.EntityName, req.ImageFile, req.Image)
	if err != nil {
		return constant.Empty, err
	}

	establishment := req.ToModel(user, ownerID, imageURL)

	if establishment.Type == model.TypeResort {
		err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
			if err := s.repo.InsertTx(ctx, tx, establishment); err != nil {
				return fmt.Errorf("failed to insert resort: %w", err)
			}

			return s.fees.Seed(ctx, tx, establishment.ID)
		})
	} else {
		err = s.repo.Insert(ctx, establishment)
	}

	if err != nil {
		log.Error().Err(err).Str("type", establishment.Type).Msg("failed to create establishment")
		upload.Discard(ctx, s.s3, bucket, model.EntityName, objectName)

		return constant.Empty, fmt.Errorf("failed to create establishment: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllEstablishment)
		shared.InvalidateCaches(c, s.cache, cacheCountEstablishment)
	}()

	return establishment.ID, nil
}

// resolveOwner returns the operator that will own the new establishment.
// Operators always own what they create; admins must name an operator of the
// matching role.
func (s *serviceImpl) resolveOwner(ctx context.Context, req dto.CreateEstablishmentRequest) (string, error) {
	user, role := shared.UserFromContext(ctx)

	if role != constant.RoleAdmin {
		if model.TypeForRole(role) != req.Type {
			return constant.Empty, failure.Forbidden(fmt.Sprintf("a %s cannot create a %s", role, req.Type)) // nolint:wrapcheck
		}

		return user, nil
	}

	if req.OwnerID == constant.Empty {
		return constant.Empty, failure.BadRequestFromString("owner_id is required when an admin creates an establishment") // nolint:wrapcheck
	}

	owner, err := s.userRepo.Get(ctx, shared.FilterByID(req.OwnerID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get owner")

		return constant.Empty, fmt.Errorf("failed to get owner: %w", err)
	}

	if owner.ID == constant.Empty {
		return constant.Empty, failure.NotFound("owner not found") // nolint:wrapcheck
	}

	if owner.Role != model.OperatorRole(req.Type) {
		return constant.Empty, failure.UnprocessableEntity(fmt.Sprintf("owner must have the %s role", model.OperatorRole(req.Type))) // nolint:wrapcheck
	}

	return owner.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetEstablishmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllEstablishment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for establishments")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get establishments")

		return res, fmt.Errorf("failed to get establishments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save establishments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountEstablishment, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count establishments")

		return res, fmt.Errorf("failed to count establishments: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save establishment count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.EstablishmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetEstablishment, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	establishment, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(establishment)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save establishment to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateEstablishmentRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	current, err := s.findOwned(ctx, id)
	if err != nil {
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

	// modified_at and modified_by are always present
	if len(updatedFields) <= 2 {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update establishment")
		upload.Discard(ctx, s.s3, bucket, model.EntityName, objectName)

		return fmt.Errorf("failed to update establishment: %w", err)
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

	current, err := s.findOwned(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if gRepo.IsForeignKeyViolation(err) {
			return failure.Conflict("establishment still has bookings") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete establishment")

		return fmt.Errorf("failed to delete establishment: %w", err)
	}

	upload.DiscardURL(ctx, s.s3, s.cfg.External.S3.BucketName, model.EntityName, current.Image)

	go s.invalidate(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Establishment, error) {
	establishment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get establishment")

		return establishment, fmt.Errorf("failed to get establishment: %w", err)
	}

	if establishment.ID == constant.Empty {
		return establishment, failure.NotFound("establishment not found") // nolint:wrapcheck
	}

	return establishment, nil
}

func (s *serviceImpl) findOwned(ctx context.Context, id string) (model.Establishment, error) {
	establishment, err := s.find(ctx, id)
	if err != nil {
		return establishment, err
	}

	user, _ := shared.UserFromContext(ctx)
	if !shared.IsAdmin(ctx) && !establishment.IsOwnedBy(user) {
		return establishment, failure.ResourceRestrictedError
	}

	return establishment, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetEstablishment, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete establishment from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllEstablishment)
	shared.InvalidateCaches(ctx, s.cache, cacheCountEstablishment)
}
