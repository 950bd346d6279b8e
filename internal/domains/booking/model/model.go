package model

import (
	"strings"
	"time"

	"tourism/shared/constant"
	"tourism/shared/model"

	"github.com/google/uuid"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldReference       = "reference"
	FieldCustomerID      = "customer_id"
	FieldOwnerID         = "owner_id"
	FieldTargetType      = "target_type"
	FieldEstablishmentID = "establishment_id"
	FieldUnitID          = "unit_id"
	FieldBoatID          = "boat_id"
	FieldBoatAssigned    = "boat_assigned"
	FieldCheckIn         = "check_in"
	FieldStatus          = "status"
	FieldCancelReason    = "cancel_reason"
	FieldAcceptedAt      = "accepted_at"
)

const (
	TargetResort      = "resort"
	TargetHotel       = "hotel"
	TargetRestaurant  = "restaurant"
	TargetLandingArea = "landing_area"
	TargetBoat        = "boat"
)

const referencePrefix = "BK-"

// Booking amounts are in centavos. CheckOut and Nights are only set for rooms.
type Booking struct {
	ID                string     `db:"id"`
	Reference         string     `db:"reference"`
	CustomerID        string     `db:"customer_id"`
	OwnerID           string     `db:"owner_id"`
	TargetType        string     `db:"target_type"`
	EstablishmentID   *string    `db:"establishment_id"`
	UnitID            *string    `db:"unit_id"`
	BoatID            *string    `db:"boat_id"`
	BoatAssigned      bool       `db:"boat_assigned"`
	CheckIn           time.Time  `db:"check_in"`
	CheckOut          *time.Time `db:"check_out"`
	Nights            int        `db:"nights"`
	Adults            int        `db:"adults"`
	Children          int        `db:"children"`
	Seniors           int        `db:"seniors"`
	PWDs              int        `db:"pwds"`
	TotalGuests       int        `db:"total_guests"`
	UnitAmount        int64      `db:"unit_amount"`
	EntranceFeeAmount int64      `db:"entrance_fee_amount"`
	TotalAmount       int64      `db:"total_amount"`
	DownPayment       int64      `db:"down_payment"`
	Status            string     `db:"status"`
	Notes             string     `db:"notes"`
	CancelReason      *string    `db:"cancel_reason"`
	AcceptedAt        *time.Time `db:"accepted_at"`
	model.Metadata
}

// NewReference returns a short human-facing booking code such as BK-1A2B3C4D.
func NewReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")

	return referencePrefix + strings.ToUpper(id[:8])
}

// AssignedBoat returns the boat currently holding a slot for this booking.
func (b Booking) AssignedBoat() string {
	if !b.BoatAssigned || b.BoatID == nil {
		return constant.Empty
	}

	return *b.BoatID
}

func (b Booking) IsCustomer(userID string) bool {
	return userID != constant.Empty && b.CustomerID == userID
}

func (b Booking) IsOwner(userID string) bool {
	return userID != constant.Empty && b.OwnerID == userID
}

// DownPaymentFor returns percent of total rounded half up to the centavo.
func DownPaymentFor(total int64, percent int) int64 {
	return (total*int64(percent) + constant.PercentBase/2) / constant.PercentBase
}
