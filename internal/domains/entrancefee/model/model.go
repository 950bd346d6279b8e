package model

import "tourism/shared/model"

const (
	TableName  = "entrance_fees"
	EntityName = "entrance_fee"

	FieldID       = "id"
	FieldResortID = "resort_id"
	FieldTier     = "tier"
	FieldPrice    = "price"
)

const (
	TierAdult  = "adult"
	TierChild  = "child"
	TierSenior = "senior"
	TierPWD    = "pwd"
)

// Tiers is the fixed, ordered set of tiers every resort carries.
var Tiers = []string{TierAdult, TierChild, TierSenior, TierPWD}

// EntranceFee is the per-head price of one tier at one resort, in centavos.
type EntranceFee struct {
	ID       string `db:"id"`
	ResortID string `db:"resort_id"`
	Tier     string `db:"tier"`
	Price    int64  `db:"price"`
	model.Metadata
}

// GuestCounts holds head counts per tier.
type GuestCounts map[string]int

// Total sums every tier.
func (g GuestCounts) Total() int {
	total := 0
	for _, count := range g {
		total += count
	}

	return total
}
