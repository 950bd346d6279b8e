package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"tourism/config"
	"tourism/infras/otel"
	"tourism/infras/paymongo"
	bookingService "tourism/internal/domains/booking/service"
	"tourism/internal/domains/payment/model"
	"tourism/internal/domains/payment/model/dto"
	"tourism/internal/domains/payment/repository"
	userModel "tourism/internal/domains/user/model"
	userRepo "tourism/internal/domains/user/repository"
	"tourism/shared"
	"tourism/shared/constant"
	gDto "tourism/shared/dto"
	"tourism/shared/failure"
	gModel "tourism/shared/model"
	"tourism/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	returnPath     = "/v1/payments/return"
	returnParamKey = "booking_id"
	redirectStatus = "payment"
	unknownStatus  = "unknown"
	paymentsLimit  = 100
)

type Payment interface {
	Checkout(ctx context.Context, bookingID string, req dto.CheckoutRequest) (dto.CheckoutResponse, error)
	// Return settles the payment the customer came back from and returns the
	// frontend URL to redirect them to.
	Return(ctx context.Context, bookingID, intentID string) (string, error)
	Webhook(ctx context.Context, signature string, body []byte) error
	ListByBooking(ctx context.Context, bookingID string) (dto.GetPaymentsResponse, error)
}

type serviceImpl struct {
	repo     repository.Payment
	bookings bookingService.Booking
	userRepo userRepo.User
	client   paymongo.Client
	cfg      *config.Config
	otel     otel.Otel
}

func New(
	repo repository.Payment,
	bookings bookingService.Booking,
	userRepo userRepo.User,
	client paymongo.Client,
	cfg *config.Config,
	otel otel.Otel,
) Payment {
	return &serviceImpl{
		repo:     repo,
		bookings: bookings,
		userRepo: userRepo,
		client:   client,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) Checkout(ctx context.Context, bookingID string, req dto.CheckoutRequest) (res dto.CheckoutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Checkout")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.bookings.Payable(ctx, bookingID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	paid, err := s.repo.Exist(ctx, byBookingAndStatus(booking.ID, model.StatusPaid))
	if err != nil {
		return res, fmt.Errorf("failed to check payments: %w", err)
	}

	if paid {
		return res, failure.Conflict("booking is already paid") // nolint:wrapcheck
	}

	billing, err := s.billing(ctx, booking.CustomerID, req)
	if err != nil {
		return res, err
	}

	intent, err := s.client.CreatePaymentIntent(ctx, paymongo.CreateIntentParams{
		Amount:      booking.DownPayment,
		MethodType:  req.MethodType,
		Description: "Down payment for booking " + booking.Reference,
		Metadata: map[string]string{
			returnParamKey: booking.ID,
			"reference":    booking.Reference,
		},
	})
	if err != nil {
		return res, gatewayError(err)
	}

	method, err := s.client.CreatePaymentMethod(ctx, req.MethodType, billing)
	if err != nil {
		return res, gatewayError(err)
	}

	attached, err := s.client.AttachPaymentIntent(ctx, intent.ID, method.ID, intent.ClientKey, s.returnURL(booking.ID))
	if err != nil {
		return res, gatewayError(err)
	}

	user, _ := shared.UserFromContext(ctx)
	payment := model.Payment{
		ID:              uuid.NewString(),
		BookingID:       booking.ID,
		CustomerID:      booking.CustomerID,
		Provider:        model.ProviderPayMongo,
		PaymentIntentID: intent.ID,
		PaymentMethodID: method.ID,
		MethodType:      req.MethodType,
		Amount:          booking.DownPayment,
		Currency:        paymongo.CurrencyPHP,
		Status:          model.StatusPending,
		CheckoutURL:     attached.RedirectURL(),
		Metadata:        gModel.NewMetadata(user, timezone.Now()),
	}

	if err = s.repo.Insert(ctx, payment); err != nil {
		log.Error().Err(err).Str("intent", intent.ID).Msg("failed to save payment")

		return res, fmt.Errorf("failed to save payment: %w", err)
	}

	if attached.Status == paymongo.IntentSucceeded {
		if err = s.settle(ctx, &payment); err != nil {
			return res, err
		}
	}

	res.FromModel(payment)

	return res, nil
}

func (s *serviceImpl) Return(ctx context.Context, bookingID, intentID string) (redirect string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Return")
	defer scope.End()
	defer scope.TraceIfError(err)

	payment, err := s.lookup(ctx, bookingID, intentID)
	if err != nil {
		return constant.Empty, err
	}

	if payment.ID == constant.Empty {
		return s.frontendURL(bookingID, unknownStatus), nil
	}

	if !payment.IsSettled() {
		intent, err := s.client.RetrievePaymentIntent(ctx, payment.PaymentIntentID)
		if err != nil {
			log.Error().Err(err).Str("intent", payment.PaymentIntentID).Msg("failed to retrieve payment intent")

			return s.frontendURL(payment.BookingID, payment.Status), nil
		}

		switch intent.Status {
		case paymongo.IntentSucceeded:
			err = s.settle(ctx, &payment)
		case paymongo.IntentAwaitingPaymentMethod:
			reason := "payment was not completed"
			if intent.LastPaymentError != nil && intent.LastPaymentError.Detail != constant.Empty {
				reason = intent.LastPaymentError.Detail
			}

			err = s.fail(ctx, &payment, reason)
		}

		if err != nil {
			return constant.Empty, err
		}
	}

	return s.frontendURL(payment.BookingID, payment.Status), nil
}

func (s *serviceImpl) Webhook(ctx context.Context, signature string, body []byte) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Webhook")
	defer scope.End()
	defer scope.TraceIfError(err)

	event, err := paymongo.ParseWebhookEvent(body)
	if err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = s.client.VerifyWebhookSignature(signature, body, event.Livemode); err != nil {
		log.Warn().Err(err).Str("event", event.ID).Msg("rejected paymongo webhook")

		return failure.InvalidSignatureError
	}

	if event.Type != paymongo.EventPaymentPaid && event.Type != paymongo.EventPaymentFailed {
		log.Debug().Str("event", event.ID).Str("type", event.Type).Msg("ignored paymongo event")

		return nil
	}

	payment, err := s.lookup(ctx, constant.Empty, event.Payment.PaymentIntentID)
	if err != nil {
		return err
	}

	if payment.ID == constant.Empty {
		log.Warn().Str("event", event.ID).Str("intent", event.Payment.PaymentIntentID).Msg("no payment for paymongo event")

		return nil
	}

	if event.Type == paymongo.EventPaymentPaid {
		return s.settle(ctx, &payment)
	}

	return s.fail(ctx, &payment, event.Payment.FailedMessage)
}

func (s *serviceImpl) ListByBooking(ctx context.Context, bookingID string) (res dto.GetPaymentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.bookings.Get(ctx, bookingID); err != nil {
		return res, err //nolint:wrapcheck
	}

	payments, err := s.repo.GetAll(ctx, latestFirst(paymentsLimit), byField(model.FieldBookingID, bookingID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments")

		return res, fmt.Errorf("failed to get payments: %w", err)
	}

	res.FromModels(payments)

	return res, nil
}

// settle marks the payment and its booking paid. Both steps are idempotent,
// so the return redirect and the webhook may race.
func (s *serviceImpl) settle(ctx context.Context, payment *model.Payment) error {
	if payment.Status != model.StatusPaid {
		now := timezone.Now()

		err := s.repo.Update(ctx, map[string]any{
			model.FieldStatus:        model.StatusPaid,
			model.FieldPaidAt:        now,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: constant.ContextSystem,
		}, byField(model.FieldID, payment.ID))
		if err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}

		payment.Status = model.StatusPaid
		payment.PaidAt = &now
	}

	err := s.bookings.MarkPaid(ctx, payment.BookingID)
	if failure.GetCode(err) == http.StatusConflict {
		err = s.bookings.MarkPaid(ctx, payment.BookingID)
	}

	if failure.GetCode(err) == http.StatusUnprocessableEntity {
		// The booking moved on while the customer was paying.
		log.Warn().Err(err).Str("payment", payment.ID).Str("booking", payment.BookingID).
			Msg("payment settled for a booking that can no longer be paid")

		return nil
	}

	return err //nolint:wrapcheck
}

func (s *serviceImpl) fail(ctx context.Context, payment *model.Payment, reason string) error {
	if payment.IsSettled() {
		return nil
	}

	err := s.repo.Update(ctx, map[string]any{
		model.FieldStatus:        model.StatusFailed,
		model.FieldFailureReason: reason,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: constant.ContextSystem,
	}, byField(model.FieldID, payment.ID))
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	payment.Status = model.StatusFailed
	payment.FailureReason = &reason

	return nil
}

// lookup finds a payment by intent, falling back to the booking's latest one.
// A missing payment is returned as the zero value.
func (s *serviceImpl) lookup(ctx context.Context, bookingID, intentID string) (model.Payment, error) {
	if intentID != constant.Empty {
		payment, err := s.repo.Get(ctx, byField(model.FieldPaymentIntentID, intentID))
		if err != nil {
			return payment, fmt.Errorf("failed to get payment: %w", err)
		}

		return payment, nil
	}

	if bookingID == constant.Empty {
		return model.Payment{}, nil
	}

	payments, err := s.repo.GetAll(ctx, latestFirst(1), byField(model.FieldBookingID, bookingID))
	if err != nil {
		return model.Payment{}, fmt.Errorf("failed to get payments: %w", err)
	}

	if len(payments) == 0 {
		return model.Payment{}, nil
	}

	return payments[0], nil
}

func (s *serviceImpl) billing(ctx context.Context, customerID string, req dto.CheckoutRequest) (paymongo.Billing, error) {
	user, err := s.userRepo.Get(ctx, shared.FilterByID(customerID, userModel.FieldID, userModel.TableName))
	if err != nil {
		return paymongo.Billing{}, fmt.Errorf("failed to get customer: %w", err)
	}

	billing := paymongo.Billing{Name: user.FullName, Email: user.Email}
	if user.Phone != nil {
		billing.Phone = *user.Phone
	}

	if req.Name != constant.Empty {
		billing.Name = req.Name
	}

	if req.Email != constant.Empty {
		billing.Email = req.Email
	}

	if req.Phone != constant.Empty {
		billing.Phone = req.Phone
	}

	return billing, nil
}

func (s *serviceImpl) returnURL(bookingID string) string {
	return s.cfg.App.BaseURL + returnPath + "?" + url.Values{returnParamKey: {bookingID}}.Encode()
}

func (s *serviceImpl) frontendURL(bookingID, status string) string {
	return fmt.Sprintf("%s/bookings/%s?%s", s.cfg.App.FrontendURL, url.PathEscape(bookingID),
		url.Values{redirectStatus: {status}}.Encode())
}

func gatewayError(err error) error {
	var apiErr *paymongo.Error
	if errors.As(err, &apiErr) {
		return failure.BadGateway(apiErr.Detail) // nolint:wrapcheck
	}

	return failure.BadGateway("payment provider is unavailable") // nolint:wrapcheck
}

func byField(field, value string) gDto.FilterGroup {
	return shared.FilterByID(value, field, model.TableName)
}

func byBookingAndStatus(bookingID, status string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingID, Operator: gDto.FilterOperatorEq, Value: bookingID, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: status, Table: model.TableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

func latestFirst(limit int) gDto.QueryParams {
	return gDto.QueryParams{
		Page:    1,
		Limit:   limit,
		SortBy:  model.TableName + "." + constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}
}
