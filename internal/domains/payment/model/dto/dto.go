package dto

import (
	"tourism/internal/domains/payment/model"
	"tourism/shared"
	"tourism/shared/constant"
	gDto "tourism/shared/dto"
	"tourism/shared/timezone"
)

type CheckoutRequest struct {
	MethodType string `json:"method_type" validate:"required,oneof=gcash paymaya grab_pay card"`
	Name       string `json:"name"        validate:"omitempty,max=100"`
	Email      string `json:"email"       validate:"omitempty,email"`
	Phone      string `json:"phone"       validate:"omitempty,max=20"`
}

type CheckoutResponse struct {
	PaymentID       string  `json:"payment_id"`
	BookingID       string  `json:"booking_id"`
	PaymentIntentID string  `json:"payment_intent_id"`
	Amount          int64   `json:"amount"`
	AmountInPeso    float64 `json:"amount_in_peso"`
	Status          string  `json:"status"`
	CheckoutURL     string  `json:"checkout_url,omitempty"`
}

func (r *CheckoutResponse) FromModel(payment model.Payment) {
	r.PaymentID = payment.ID
	r.BookingID = payment.BookingID
	r.PaymentIntentID = payment.PaymentIntentID
	r.Amount = payment.Amount
	r.AmountInPeso = shared.CentavosToPeso(payment.Amount)
	r.Status = payment.Status
	r.CheckoutURL = payment.CheckoutURL
}

type PaymentResponse struct {
	ID              string  `json:"id"`
	BookingID       string  `json:"booking_id"`
	Provider        string  `json:"provider"`
	PaymentIntentID string  `json:"payment_intent_id"`
	MethodType      string  `json:"method_type"`
	Amount          int64   `json:"amount"`
	AmountInPeso    float64 `json:"amount_in_peso"`
	Currency        string  `json:"currency"`
	Status          string  `json:"status"`
	PaidAt          string  `json:"paid_at,omitempty"`
	FailureReason   *string `json:"failure_reason,omitempty"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(payment model.Payment) {
	r.ID = payment.ID
	r.BookingID = payment.BookingID
	r.Provider = payment.Provider
	r.PaymentIntentID = payment.PaymentIntentID
	r.MethodType = payment.MethodType
	r.Amount = payment.Amount
	r.AmountInPeso = shared.CentavosToPeso(payment.Amount)
	r.Currency = payment.Currency
	r.Status = payment.Status
	r.FailureReason = payment.FailureReason

	if payment.PaidAt != nil {
		r.PaidAt = timezone.Format(*payment.PaidAt, constant.DateFormat)
	}

	r.Metadata.FromModel(payment.Metadata)
}

type GetPaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

func (r *GetPaymentsResponse) FromModels(models []model.Payment) {
	r.Payments = make([]PaymentResponse, len(models))
	for i, mod := range models {
		r.Payments[i].FromModel(mod)
	}
}
