package dto

import (
	"time"

	"tourism/internal/domains/booking/model"
	entranceFeeModel "tourism/internal/domains/entrancefee/model"
	"tourism/shared"
	"tourism/shared/constant"
	gDto "tourism/shared/dto"
	"tourism/shared/timezone"
)

type CreateBookingRequest struct {
	UnitID   string `json:"unit_id"   validate:"required_without=BoatID,excluded_with=BoatID,omitempty,uuid4"`
	BoatID   string `json:"boat_id"   validate:"required_without=UnitID,omitempty,uuid4"`
	CheckIn  string `json:"check_in"  validate:"required,dateonly"`
	CheckOut string `json:"check_out" validate:"omitempty,dateonly"`
	Adults   int    `json:"adults"    validate:"min=0"`
	Children int    `json:"children"  validate:"min=0"`
	Seniors  int    `json:"seniors"   validate:"min=0"`
	PWDs     int    `json:"pwds"      validate:"min=0"`
	Notes    string `json:"notes"     validate:"omitempty,max=500"`
}

// Guests maps the request onto entrance fee tiers.
func (c *CreateBookingRequest) Guests() entranceFeeModel.GuestCounts {
	return entranceFeeModel.GuestCounts{
		entranceFeeModel.TierAdult:  c.Adults,
		entranceFeeModel.TierChild:  c.Children,
		entranceFeeModel.TierSenior: c.Seniors,
		entranceFeeModel.TierPWD:    c.PWDs,
	}
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type AssignBoatRequest struct {
	BoatID string `json:"boat_id" validate:"required,uuid4"`
}

type BookingResponse struct {
	ID                  string  `json:"id"`
	Reference           string  `json:"reference"`
	CustomerID          string  `json:"customer_id"`
	OwnerID             string  `json:"owner_id"`
	TargetType          string  `json:"target_type"`
	EstablishmentID     *string `json:"establishment_id,omitempty"`
	UnitID              *string `json:"unit_id,omitempty"`
	BoatID              *string `json:"boat_id,omitempty"`
	BoatAssigned        bool    `json:"boat_assigned"`
	CheckIn             string  `json:"check_in"`
	CheckOut            string  `json:"check_out,omitempty"`
	Nights              int     `json:"nights"`
	Adults              int     `json:"adults"`
	Children            int     `json:"children"`
	Seniors             int     `json:"seniors"`
	PWDs                int     `json:"pwds"`
	TotalGuests         int     `json:"total_guests"`
	UnitAmount          int64   `json:"unit_amount"`
	EntranceFeeAmount   int64   `json:"entrance_fee_amount"`
	TotalAmount         int64   `json:"total_amount"`
	TotalAmountInPeso   float64 `json:"total_amount_in_peso"`
	DownPayment         int64   `json:"down_payment"`
	DownPaymentInPeso   float64 `json:"down_payment_in_peso"`
	Status              string  `json:"status"`
	Notes               string  `json:"notes,omitempty"`
	CancelReason        *string `json:"cancel_reason,omitempty"`
	AcceptedAt          string  `json:"accepted_at,omitempty"`
	ExpiresAt           string  `json:"expires_at,omitempty"`
	RequiresDownPayment bool    `json:"requires_down_payment"`
	gDto.Metadata
}

// FromModel reports the effective status at now rather than the stored one.
func (r *BookingResponse) FromModel(booking model.Booking, now time.Time, policy model.ExpiryPolicy) {
	r.ID = booking.ID
	r.Reference = booking.Reference
	r.CustomerID = booking.CustomerID
	r.OwnerID = booking.OwnerID
	r.TargetType = booking.TargetType
	r.EstablishmentID = booking.EstablishmentID
	r.UnitID = booking.UnitID
	r.BoatID = booking.BoatID
	r.BoatAssigned = booking.BoatAssigned
	r.CheckIn = timezone.Date(booking.CheckIn).Format(constant.DateOnlyFormat)
	r.Nights = booking.Nights
	r.Adults = booking.Adults
	r.Children = booking.Children
	r.Seniors = booking.Seniors
	r.PWDs = booking.PWDs
	r.TotalGuests = booking.TotalGuests
	r.UnitAmount = booking.UnitAmount
	r.EntranceFeeAmount = booking.EntranceFeeAmount
	r.TotalAmount = booking.TotalAmount
	r.TotalAmountInPeso = shared.CentavosToPeso(booking.TotalAmount)
	r.DownPayment = booking.DownPayment
	r.DownPaymentInPeso = shared.CentavosToPeso(booking.DownPayment)
	r.Status = booking.EffectiveStatus(now, policy)
	r.Notes = booking.Notes
	r.CancelReason = booking.CancelReason
	r.RequiresDownPayment = model.RequiresDownPayment(booking.TargetType)
	r.Metadata.FromModel(booking.Metadata)

	if booking.CheckOut != nil {
		r.CheckOut = timezone.Date(*booking.CheckOut).Format(constant.DateOnlyFormat)
	}

	if booking.AcceptedAt != nil {
		r.AcceptedAt = timezone.Format(*booking.AcceptedAt, constant.DateFormat)
	}

	if r.Status == booking.Status {
		if expiresAt := booking.ExpiresAt(policy); expiresAt != nil {
			r.ExpiresAt = timezone.Format(*expiresAt, constant.DateFormat)
		}
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int, now time.Time, policy model.ExpiryPolicy) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod, now, policy)
	}
}
