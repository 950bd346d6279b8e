package model

import (
	"time"

	"tourism/shared/model"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID              = "id"
	FieldBookingID       = "booking_id"
	FieldPaymentIntentID = "payment_intent_id"
	FieldStatus          = "status"
	FieldPaidAt          = "paid_at"
	FieldFailureReason   = "failure_reason"
)

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusFailed  = "failed"
)

const ProviderPayMongo = "paymongo"

// Payment is one checkout attempt for a booking's down payment.
type Payment struct {
	ID              string     `db:"id"`
	BookingID       string     `db:"booking_id"`
	CustomerID      string     `db:"customer_id"`
	Provider        string     `db:"provider"`
	PaymentIntentID string     `db:"payment_intent_id"`
	PaymentMethodID string     `db:"payment_method_id"`
	MethodType      string     `db:"method_type"`
	Amount          int64      `db:"amount"`
	Currency        string     `db:"currency"`
	Status          string     `db:"status"`
	CheckoutURL     string     `db:"checkout_url"`
	PaidAt          *time.Time `db:"paid_at"`
	FailureReason   *string    `db:"failure_reason"`
	model.Metadata
}

func (p Payment) IsSettled() bool {
	return p.Status != StatusPending
}
