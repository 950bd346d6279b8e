package payment

import (
	"io"
	"net/http"

	"tourism/infras/otel"
	"tourism/internal/domains/payment/model"
	"tourism/internal/domains/payment/model/dto"
	"tourism/internal/domains/payment/service"
	"tourism/shared/constant"
	"tourism/shared/failure"
	"tourism/shared/validator"
	"tourism/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryPaymentIntentID = "payment_intent_id"
	webhookMaxBodyBytes  = 1 << 20 // 1 MB
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/bookings/{id}/checkout", handler.Checkout)
		routerGroup.Get("/bookings/{id}", handler.GetPayments)
		routerGroup.Get("/return", handler.Return)
		routerGroup.Post("/webhook", handler.Webhook)
	})
}

// Checkout starts a PayMongo payment for an accepted booking's down payment.
// @Summary Pay for a booking
// @Description Creates a payment intent for the down payment (or the full amount) and returns the URL the customer must visit to authorize it.
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CheckoutRequest true "Payment method and billing details"
// @Success 201 {object} response.Data[dto.CheckoutResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/payments/bookings/{id}/checkout [post]
// @Security BearerAuth
func (handler *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Checkout")
	defer scope.End()

	req := dto.CheckoutRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	checkout, err := handler.service.Checkout(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to checkout booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment intent " + checkout.PaymentIntentID + " created")

	response.WithJSON(w, http.StatusCreated, checkout)
}

// GetPayments lists the payment attempts of a booking.
// @Summary List booking payments
// @Tags Payment
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.GetPaymentsResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayments")
	defer scope.End()

	payments, err := handler.service.ListByBooking(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payments)
}

// Return is where PayMongo sends the customer after authorization. It reconciles the
// intent and redirects to the frontend booking page.
// @Summary Payment return
// @Tags Payment
// @Param booking_id query string true "Booking ID"
// @Param payment_intent_id query string false "Payment intent ID"
// @Success 302
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/return [get]
func (handler *Handler) Return(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Return")
	defer scope.End()

	query := r.URL.Query()

	bookingID := query.Get(model.FieldBookingID)
	if err := validator.ValidateVar(bookingID, "required,uuid4"); err != nil {
		response.WithError(w, err)

		return
	}

	redirect, err := handler.service.Return(ctx, bookingID, query.Get(queryPaymentIntentID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking", bookingID).Msg("failed to reconcile payment return")

		response.WithError(w, err)

		return
	}

	response.WithRedirect(w, r, redirect)
}

// Webhook receives PayMongo payment events.
// @Summary PayMongo webhook
// @Tags Payment
// @Accept json
// @Produce json
// @Param Paymongo-Signature header string true "Webhook signature"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/webhook [post]
func (handler *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Webhook")
	defer scope.End()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, webhookMaxBodyBytes))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, failure.BadRequest(err))

		return
	}

	if err := handler.service.Webhook(ctx, r.Header.Get(constant.RequestHeaderPayMongoSignature), body); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to handle paymongo webhook")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Webhook received")
}
