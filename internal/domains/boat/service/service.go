package service

import (
	"context"
	"fmt"

	"tourism/config"
	"tourism/infras/otel"
	"tourism/infras/s3"
	"tourism/internal/domains/boat/model"
	"tourism/internal/domains/boat/model/dto"
	"tourism/internal/domains/boat/repository"
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

type Boat interface {
	Create(ctx context.Context, req dto.CreateBoatRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBoatsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BoatResponse, error)
	Update(ctx context.Context, req dto.UpdateBoatRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Boat
	userRepo   userRepo.User
	transactor gRepo.Transactor
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	s3         s3.S3
}

func New(
	repo repository.Boat,
	userRepo userRepo.User,
	transactor gRepo.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Boat {
	return &serviceImpl{
		repo:       repo,
		userRepo:   userRepo,
		transactor: transactor,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		s3:         s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBoatRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	ownerID, err := s.resolveOwner(ctx, req.OwnerID)
	if err != nil {
		return constant.Empty, err
	}

	user, _ := shared.UserFromContext(ctx)
	bucket := s.cfg.External.S3.BucketName

	imageURL, objectName, err := upload.Image(ctx, s.s3, bucket, model.EntityName, req.ImageFile, req.Image)
	if err != nil {
		return constant.Empty, err
	}

	boat := req.ToModel(user, ownerID, imageURL)

	if err = s.repo.Insert(ctx, boat); err != nil {
		log.Error().Err(err).Msg("failed to create boat")
		upload.Discard(ctx, s.s3, bucket, model.EntityName, objectName)

		return constant.Empty, fmt.Errorf("failed to create boat: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, model.CacheGetAll)
		shared.InvalidateCaches(c, s.cache, model.CacheCount)
	}()

	return boat.ID, nil
}

func (s *serviceImpl) resolveOwner(ctx context.Context, requested string) (string, error) {
	user, role := shared.UserFromContext(ctx)

	switch role {
	case constant.RoleBoatOperator:
		return user, nil
	case constant.RoleAdmin:
	default:
		return constant.Empty, failure.ForbiddenError
	}

	if requested == constant.Empty {
		return constant.Empty, failure.BadRequestFromString("owner_id is required when an admin creates a boat") // nolint:wrapcheck
	}

	owner, err := s.userRepo.Get(ctx, shared.FilterByID(requested, userModel.FieldID, userModel.TableName))
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to get owner: %w", err)
	}

	if owner.ID == constant.Empty {
		return constant.Empty, failure.NotFound("owner not found") // nolint:wrapcheck
	}

	if owner.Role != constant.RoleBoatOperator {
		return constant.Empty, failure.UnprocessableEntity("owner must have the boat_operator role") // nolint:wrapcheck
	}

	return owner.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBoatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for boats")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get boats")

		return res, fmt.Errorf("failed to get boats: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save boats to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCount, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count boats")

		return res, fmt.Errorf("failed to count boats: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save boat count to cache")
		}
	}()

	return res, nil
}

// Get is not cached: available_slots changes with every assignment.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BoatResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	boat, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(boat)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBoatRequest, id string) (err error) {
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

	if len(updatedFields) <= 2 {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if req.TotalSlots != nil {
		err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
			locked, err := s.repo.GetForUpdateTx(ctx, tx, filter)
			if err != nil {
				return fmt.Errorf("failed to lock boat: %w", err)
			}

			updatedFields[model.FieldTotalSlots] = *req.TotalSlots
			updatedFields[model.FieldAvailableSlots] = locked.AdjustedAvailableSlots(*req.TotalSlots)

			return s.repo.UpdateTx(ctx, tx, updatedFields, filter)
		})
	} else {
		err = s.repo.Update(ctx, updatedFields, filter)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to update boat")
		upload.Discard(ctx, s.s3, bucket, model.EntityName, objectName)

		return fmt.Errorf("failed to update boat: %w", err)
	}

	if imageURL != constant.Empty {
		upload.DiscardURL(ctx, s.s3, bucket, model.EntityName, current.Image)
	}

	go s.invalidate(context.WithoutCancel(ctx))

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
			return failure.Conflict("boat still has bookings") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete boat")

		return fmt.Errorf("failed to delete boat: %w", err)
	}

	upload.DiscardURL(ctx, s.s3, s.cfg.External.S3.BucketName, model.EntityName, current.Image)

	go s.invalidate(context.WithoutCancel(ctx))

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Boat, error) {
	boat, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get boat")

		return boat, fmt.Errorf("failed to get boat: %w", err)
	}

	if boat.ID == constant.Empty {
		return boat, failure.NotFound("boat not found") // nolint:wrapcheck
	}

	return boat, nil
}

func (s *serviceImpl) findOwned(ctx context.Context, id string) (model.Boat, error) {
	boat, err := s.find(ctx, id)
	if err != nil {
		return boat, err
	}

	user, _ := shared.UserFromContext(ctx)
	if !shared.IsAdmin(ctx) && !boat.IsOwnedBy(user) {
		return boat, failure.ResourceRestrictedError
	}

	return boat, nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, model.CacheGetAll)
	shared.InvalidateCaches(ctx, s.cache, model.CacheCount)
}
