package service

import (
	"context"
	"fmt"

	boatModel "tourism/internal/domains/boat/model"
	"tourism/internal/domains/booking/model"
	"tourism/internal/domains/booking/model/dto"
	"tourism/internal/domains/bookinghistory/event"
	"tourism/shared"
	"tourism/shared/constant"
	"tourism/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// change describes one guarded write to a booking.
type change struct {
	to      string
	reason  string
	fields  map[string]any
	release bool   // give back the slot held on the assigned boat
	assign  string // take a slot on this boat, releasing any other one
}

const reasonExpired = "expired"

func (s *serviceImpl) Accept(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Accept")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.managed(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status != model.StatusPending {
		return failure.UnprocessableEntity(fmt.Sprintf("cannot accept a %s booking", booking.Status)) // nolint:wrapcheck
	}

	ch := change{
		to:     model.StatusAfterAccept(booking.TargetType),
		fields: map[string]any{},
	}

	if ch.to == model.StatusAccepted {
		ch.fields[model.FieldAcceptedAt] = s.now()
	}

	if booking.TargetType == model.TargetBoat && booking.BoatID != nil {
		ch.assign = *booking.BoatID
	}

	return s.apply(ctx, booking, ch)
}

func (s *serviceImpl) Cancel(ctx context.Context, id string, req dto.CancelBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	user, _ := shared.UserFromContext(ctx)
	manager := canManage(ctx, booking)

	if !manager && !booking.IsCustomer(user) {
		return failure.ResourceRestrictedError
	}

	if err = s.expireIfDue(ctx, booking); err != nil {
		return err
	}

	if !model.CanTransition(booking.Status, model.StatusCancelled) {
		return failure.UnprocessableEntity(fmt.Sprintf("cannot cancel a %s booking", booking.Status)) // nolint:wrapcheck
	}

	if !manager && booking.Status != model.StatusPending && booking.Status != model.StatusAccepted {
		return failure.UnprocessableEntity("only pending or accepted bookings can be cancelled by the customer") // nolint:wrapcheck
	}

	return s.apply(ctx, booking, change{
		to:      model.StatusCancelled,
		reason:  req.Reason,
		fields:  map[string]any{model.FieldCancelReason: req.Reason},
		release: true,
	})
}

func (s *serviceImpl) Complete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Complete")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.managed(ctx, id)
	if err != nil {
		return err
	}

	if !model.CanTransition(booking.Status, model.StatusCompleted) {
		return failure.UnprocessableEntity(fmt.Sprintf("cannot complete a %s booking", booking.Status)) // nolint:wrapcheck
	}

	return s.apply(ctx, booking, change{to: model.StatusCompleted, release: true})
}

// AssignBoat lets a landing area hand its guests over to a boat. Reassigning
// moves the held slot from the old boat to the new one.
func (s *serviceImpl) AssignBoat(ctx context.Context, id string, req dto.AssignBoatRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AssignBoat")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.managed(ctx, id)
	if err != nil {
		return err
	}

	if booking.TargetType != model.TargetLandingArea {
		return failure.UnprocessableEntity("boats can only be assigned to landing area bookings") // nolint:wrapcheck
	}

	if booking.Status != model.StatusAccepted && booking.Status != model.StatusConfirmed {
		return failure.UnprocessableEntity(fmt.Sprintf("cannot assign a boat to a %s booking", booking.Status)) // nolint:wrapcheck
	}

	boat, err := s.boatRepo.Get(ctx, shared.FilterByID(req.BoatID, boatModel.FieldID, boatModel.TableName))
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

	if booking.AssignedBoat() == boat.ID {
		return nil
	}

	return s.apply(ctx, booking, change{to: booking.Status, assign: boat.ID})
}

func (s *serviceImpl) Payable(ctx context.Context, id string) (booking model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Payable")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err = s.find(ctx, id)
	if err != nil {
		return booking, err
	}

	user, _ := shared.UserFromContext(ctx)
	if !booking.IsCustomer(user) {
		return booking, failure.ResourceRestrictedError
	}

	if err = s.expireIfDue(ctx, booking); err != nil {
		return booking, err
	}

	if booking.Status != model.StatusAccepted {
		return booking, failure.UnprocessableEntity(fmt.Sprintf("a %s booking cannot be paid", booking.Status)) // nolint:wrapcheck
	}

	return booking, nil
}

// MarkPaid honours a settled payment even when the payment window closed
// while the customer was at checkout.
func (s *serviceImpl) MarkPaid(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkPaid")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	switch booking.Status {
	case model.StatusPaid:
		return nil
	case model.StatusAccepted:
		return s.apply(ctx, booking, change{to: model.StatusPaid})
	default:
		return failure.UnprocessableEntity(fmt.Sprintf("a %s booking cannot be paid", booking.Status)) // nolint:wrapcheck
	}
}

// managed loads a booking the caller operates and expires it when due.
func (s *serviceImpl) managed(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return booking, err
	}

	if !canManage(ctx, booking) {
		return booking, failure.ResourceRestrictedError
	}

	if err = s.expireIfDue(ctx, booking); err != nil {
		return booking, err
	}

	return booking, nil
}

// expireIfDue persists an expiry that has only been computed so far and
// rejects the pending write.
func (s *serviceImpl) expireIfDue(ctx context.Context, booking model.Booking) error {
	if booking.Status == model.StatusExpired || booking.EffectiveStatus(s.now(), s.policy()) != model.StatusExpired {
		return nil
	}

	err := s.apply(context.WithValue(ctx, constant.ContextKeyUserID, constant.ContextSystem), booking, change{
		to:      model.StatusExpired,
		reason:  reasonExpired,
		release: true,
	})
	if err != nil {
		return err
	}

	return failure.UnprocessableEntity("booking has expired") // nolint:wrapcheck
}

// apply runs ch under a row lock. The write is refused when another request
// changed the booking after it was read.
func (s *serviceImpl) apply(ctx context.Context, booking model.Booking, ch change) error {
	actor, _ := shared.UserFromContext(ctx)
	if actor == constant.Empty {
		actor = constant.ContextSystem
	}

	filter := shared.FilterByID(booking.ID, model.FieldID, model.TableName)
	slotsChanged := false

	err := s.transactor.WithTransaction(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		locked, err := s.repo.GetForUpdateTx(ctx, sqltx, filter)
		if err != nil {
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if locked.Status != booking.Status || locked.AssignedBoat() != booking.AssignedBoat() {
			return failure.Conflict("booking was changed by another request") // nolint:wrapcheck
		}

		fields := map[string]any{
			model.FieldStatus:        ch.to,
			constant.FieldModifiedAt: s.now(),
			constant.FieldModifiedBy: actor,
		}
		for field, value := range ch.fields {
			fields[field] = value
		}

		held := booking.AssignedBoat()
		if held != constant.Empty && (ch.release || ch.assign != constant.Empty) {
			if err = s.boatRepo.IncrementSlotTx(ctx, sqltx, held); err != nil {
				return fmt.Errorf("failed to release boat slot: %w", err)
			}

			fields[model.FieldBoatAssigned] = false
			slotsChanged = true
		}

		if ch.assign != constant.Empty {
			ok, err := s.boatRepo.DecrementSlotTx(ctx, sqltx, ch.assign)
			if err != nil {
				return fmt.Errorf("failed to reserve boat slot: %w", err)
			}

			if !ok {
				return failure.Conflict("boat has no available slots") // nolint:wrapcheck
			}

			fields[model.FieldBoatID] = ch.assign
			fields[model.FieldBoatAssigned] = true
			slotsChanged = true
		}

		if err = s.repo.UpdateTx(ctx, sqltx, fields, filter); err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("booking", booking.ID).Str("to", ch.to).Msg("failed to change booking")

		return err //nolint:wrapcheck
	}

	if slotsChanged {
		go func() {
			c := context.WithoutCancel(ctx)
			shared.InvalidateCaches(c, s.cache, boatModel.CacheGetAll)
			shared.InvalidateCaches(c, s.cache, boatModel.CacheCount)
		}()
	}

	if ch.to != booking.Status {
		s.publish(ctx, event.NewBookingStatusChanged(booking.ID, booking.Status, ch.to, actor, ch.reason, s.now()))
	}

	return nil
}
