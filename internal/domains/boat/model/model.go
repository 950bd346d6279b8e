package model

import (
	"tourism/shared/constant"
	"tourism/shared/model"
)

const (
	TableName  = "boats"
	EntityName = "boat"

	FieldID                = "id"
	FieldOwnerID           = "owner_id"
	FieldName              = "name"
	FieldDescription       = "description"
	FieldCapacity          = "capacity"
	FieldPricePerPassenger = "price_per_passenger"
	FieldTotalSlots        = "total_slots"
	FieldAvailableSlots    = "available_slots"
	FieldImage             = "image"
	FieldActive            = "active"
)

// Listing caches hold available_slots, so slot changes made elsewhere must clear them.
const (
	CacheGetAll = "boat:gets"
	CacheCount  = "boat:count"
)

// Boat is a boat run by a boat operator. Capacity is the number of passengers
// per trip and each slot is one trip that can be assigned to a booking.
type Boat struct {
	ID                string `db:"id"`
	OwnerID           string `db:"owner_id"`
	Name              string `db:"name"`
	Description       string `db:"description"`
	Capacity          int    `db:"capacity"`
	PricePerPassenger int64  `db:"price_per_passenger"`
	TotalSlots        int    `db:"total_slots"`
	AvailableSlots    int    `db:"available_slots"`
	Image             string `db:"image"`
	Active            bool   `db:"active"`
	model.Metadata
}

func (b Boat) IsOwnedBy(userID string) bool {
	return b.OwnerID != constant.Empty && b.OwnerID == userID
}

// AdjustedAvailableSlots applies a total_slots change to the available count,
// never going below zero.
func (b Boat) AdjustedAvailableSlots(newTotal int) int {
	return max(b.AvailableSlots+newTotal-b.TotalSlots, 0)
}
