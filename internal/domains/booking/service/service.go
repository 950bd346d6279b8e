package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"tourism/config"
	"tourism/infras/otel"
	boatModel "tourism/internal/domains/boat/model"
	boatRepo "tourism/internal/domains/boat/repository"
	"tourism/internal/domains/booking/model"
	"tourism/internal/domains/booking/model/dto"
	"tourism/internal/domains/booking/repository"
	"tourism/internal/domains/bookinghistory/event"
	historyDto "tourism/internal/domains/bookinghistory/model/dto"
	historyService "tourism/internal/domains/bookinghistory/service"
	feeService "tourism/internal/domains/entrancefee/service"
	estModel "tourism/internal/domains/establishment/model"
	estRepo "tourism/internal/domains/establishment/repository"
	unitModel "tourism/internal/domains/unit/model"
	unitRepo "tourism/internal/domains/unit/repository"
	"tourism/shared"
	"tourism/shared/cache"
	"tourism/shared/constant"
	gDto "tourism/shared/dto"
	"tourism/shared/failure"
	gModel "tourism/shared/model"
	gRepo "tourism/shared/repository"
	"tourism/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Mine(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Managed(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	History(ctx context.Context, id string) (historyDto.GetHistoriesResponse, error)
	Export(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) ([]byte, error)

	Accept(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string, req dto.CancelBookingRequest) error
	Complete(ctx context.Context, id string) error
	AssignBoat(ctx context.Context, id string, req dto.AssignBoatRequest) error

	// Payable returns the caller's booking when it is waiting for its down payment.
	Payable(ctx context.Context, id string) (model.Booking, error)
	// MarkPaid is reserved for the payment flow. Marking a paid booking again is a no-op.
	MarkPaid(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Booking
	unitRepo   unitRepo.Unit
	estRepo    estRepo.Establishment
	boatRepo   boatRepo.Boat
	fees       feeService.EntranceFee
	history    historyService.History
	publisher  event.Publisher
	transactor gRepo.Transactor
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	now        func() time.Time
}

func New(
	repo repository.Booking,
	unitRepo unitRepo.Unit,
	estRepo estRepo.Establishment,
	boatRepo boatRepo.Boat,
	fees feeService.EntranceFee,
	history historyService.History,
	publisher event.Publisher,
	transactor gRepo.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		unitRepo:   unitRepo,
		estRepo:    estRepo,
		boatRepo:   boatRepo,
		fees:       fees,
		history:    history,
		publisher:  publisher,
		transactor: transactor,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		now:        timezone.Now,
	}
}

func (s *serviceImpl) policy() model.ExpiryPolicy {
	return model.ExpiryPolicy{
		PendingWindow: time.Duration(s.cfg.Booking.PendingExpireHours) * time.Hour,
		PaymentWindow: time.Duration(s.cfg.Booking.PaymentExpireHours) * time.Hour,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := shared.UserFromContext(ctx)
	now := s.now()

	guests := req.Guests()
	if guests.Total() < 1 {
		return res, failure.BadRequestFromString("at least one guest is required") // nolint:wrapcheck
	}

	checkIn, err := timezone.ParseDate(req.CheckIn)
	if err != nil {
		return res, failure.BadRequestFromString("check_in must be a date in YYYY-MM-DD format") // nolint:wrapcheck
	}

	if checkIn.Before(timezone.StartOfDay(now)) {
		return res, failure.BadRequestFromString("check_in cannot be in the past") // nolint:wrapcheck
	}

	booking := model.Booking{
		ID:          uuid.NewString(),
		Reference:   model.NewReference(),
		CustomerID:  user,
		CheckIn:     checkIn,
		Adults:      req.Adults,
		Children:    req.Children,
		Seniors:     req.Seniors,
		PWDs:        req.PWDs,
		TotalGuests: guests.Total(),
		Status:      model.StatusPending,
		Notes:       req.Notes,
		Metadata:    gModel.NewMetadata(user, now),
	}

	if req.UnitID != constant.Empty {
		err = s.priceUnit(ctx, &booking, req)
	} else {
		err = s.priceBoat(ctx, &booking, req.BoatID)
	}

	if err != nil {
		return res, err
	}

	booking.TotalAmount = booking.UnitAmount + booking.EntranceFeeAmount
	if model.RequiresDownPayment(booking.TargetType) {
		booking.DownPayment = model.DownPaymentFor(booking.TotalAmount, s.cfg.Booking.DownPaymentPercent)
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.publish(ctx, event.NewBookingStatusChanged(booking.ID, constant.Empty, booking.Status, user, constant.Empty, now))

	res.FromModel(booking, now, s.policy())

	return res, nil
}

// priceUnit fills the target and amounts of a room, table or service booking.
func (s *serviceImpl) priceUnit(ctx context.Context, booking *model.Booking, req dto.CreateBookingRequest) error {
	unit, err := s.unitRepo.Get(ctx, shared.FilterByID(req.UnitID, unitModel.FieldID, unitModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to get unit: %w", err)
	}

	if unit.ID == constant.Empty {
		return failure.NotFound("unit not found") // nolint:wrapcheck
	}

	if !unit.IsAvailable() {
		return failure.UnprocessableEntity("unit is not available") // nolint:wrapcheck
	}

	establishment, err := s.estRepo.Get(ctx, shared.FilterByID(unit.EstablishmentID, estModel.FieldID, estModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to get establishment: %w", err)
	}

	if establishment.ID == constant.Empty {
		return failure.NotFound("establishment not found") // nolint:wrapcheck
	}

	if !establishment.Active {
		return failure.UnprocessableEntity("establishment is not accepting bookings") // nolint:wrapcheck
	}

	if booking.TotalGuests > unit.Capacity {
		return failure.UnprocessableEntity(fmt.Sprintf("%s holds at most %d guests", unit.Name, unit.Capacity)) // nolint:wrapcheck
	}

	booking.TargetType = establishment.Type
	booking.OwnerID = establishment.OwnerID
	booking.EstablishmentID = &establishment.ID
	booking.UnitID = &unit.ID
	booking.UnitAmount = unit.Price

	if unit.Kind == unitModel.KindRoom {
		if req.CheckOut == constant.Empty {
			return failure.BadRequestFromString("check_out is required for room bookings") // nolint:wrapcheck
		}

		checkOut, err := timezone.ParseDate(req.CheckOut)
		if err != nil {
			return failure.BadRequestFromString("check_out must be a date in YYYY-MM-DD format") // nolint:wrapcheck
		}

		nights := timezone.NightsBetween(booking.CheckIn, checkOut)
		if nights < 1 {
			return failure.BadRequestFromString("check_out must be after check_in") // nolint:wrapcheck
		}

		booking.CheckOut = &checkOut
		booking.Nights = nights
		booking.UnitAmount = unit.Price * int64(nights)
	}

	if establishment.Type == estModel.TypeResort {
		quote, err := s.fees.Quote(ctx, establishment.ID, req.Guests())
		if err != nil {
			return err //nolint:wrapcheck
		}

		booking.EntranceFeeAmount = quote.Total
	}

	return nil
}

func (s *serviceImpl) priceBoat(ctx context.Context, booking *model.Booking, boatID string) error {
	boat, err := s.boatRepo.Get(ctx, shared.FilterByID(boatID, boatModel.FieldID, boatModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to get boat: %w", err)
	}

	if boat.ID == constant.Empty {
		return failure.NotFound("boat not found") // nolint:wrapcheck
	}

	if !boat.Active {
		return failure.UnprocessableEntity("boat is not accepting bookings") // nolint:wrapcheck
	}

	if booking.TotalGuests > boat.Capacity {
		return failure.UnprocessableEntity(fmt.Sprintf("%s carries at most %d passengers", boat.Name, boat.Capacity)) // nolint:wrapcheck
	}

	booking.TargetType = model.TargetBoat
	booking.OwnerID = boat.OwnerID
	booking.BoatID = &boat.ID
	booking.UnitAmount = boat.PricePerPassenger * int64(booking.TotalGuests)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !canView(ctx, booking) {
		return res, failure.ResourceRestrictedError
	}

	res.FromModel(booking, s.now(), s.policy())

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := s.now()
	filter = effectiveStatus(filter, now, s.policy())

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit, now, s.policy())

	return res, nil
}

// Mine lists the caller's own bookings.
func (s *serviceImpl) Mine(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
	user, _ := shared.UserFromContext(ctx)

	return s.GetAll(ctx, req, scoped(filter, model.FieldCustomerID, user))
}

// Managed lists bookings for everything the caller operates.
func (s *serviceImpl) Managed(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
	user, _ := shared.UserFromContext(ctx)

	return s.GetAll(ctx, req, scoped(filter, model.FieldOwnerID, user))
}

func (s *serviceImpl) History(ctx context.Context, id string) (res historyDto.GetHistoriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".History")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.Get(ctx, id); err != nil {
		return res, err
	}

	return s.history.ListByBooking(ctx, id) //nolint:wrapcheck
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) publish(ctx context.Context, events ...event.BookingStatusChanged) {
	if err := s.publisher.PublishStatusChanged(ctx, events...); err != nil {
		log.Error().Err(err).Int("events", len(events)).Msg("failed to publish booking status change")
	}
}

func canView(ctx context.Context, booking model.Booking) bool {
	user, _ := shared.UserFromContext(ctx)

	return shared.IsAdmin(ctx) || booking.IsCustomer(user) || booking.IsOwner(user)
}

func canManage(ctx context.Context, booking model.Booking) bool {
	user, _ := shared.UserFromContext(ctx)

	return shared.IsAdmin(ctx) || booking.IsOwner(user)
}

// scoped narrows filter to rows where field equals value.
func scoped(filter gDto.FilterGroup, field, value string) gDto.FilterGroup {
	scope := gDto.Filter{
		Field:    field,
		Operator: gDto.FilterOperatorEq,
		Value:    value,
		Table:    model.TableName,
		ArgName:  "scope_" + field,
	}

	if len(filter.Filters) == 0 {
		return gDto.FilterGroup{Filters: []any{scope}}
	}

	return gDto.FilterGroup{
		Filters:  []any{filter, scope},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}
