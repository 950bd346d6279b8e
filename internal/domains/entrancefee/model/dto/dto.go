package dto

import (
	"tourism/config"
	"tourism/internal/domains/entrancefee/model"
	"tourism/shared"
	gDto "tourism/shared/dto"
	gModel "tourism/shared/model"
	"tourism/shared/timezone"

	"github.com/google/uuid"
)

// DefaultPrices maps each tier to its configured default price.
func DefaultPrices(cfg *config.Config) map[string]int64 {
	return map[string]int64{
		model.TierAdult:  cfg.EntranceFee.Adult,
		model.TierChild:  cfg.EntranceFee.Child,
		model.TierSenior: cfg.EntranceFee.Senior,
		model.TierPWD:    cfg.EntranceFee.PWD,
	}
}

func NewEntranceFee(resortID, tier string, price int64, user string) model.EntranceFee {
	return model.EntranceFee{
		ID:       uuid.NewString(),
		ResortID: resortID,
		Tier:     tier,
		Price:    price,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateEntranceFeeRequest struct {
	Price *int64 `db:"price" json:"price" validate:"required,min=0"`
}

type EntranceFeeResponse struct {
	ID          string  `json:"id"`
	ResortID    string  `json:"resort_id"`
	Tier        string  `json:"tier"`
	Price       int64   `json:"price"`
	PriceInPeso float64 `json:"price_in_peso"`
	gDto.Metadata
}

func (r *EntranceFeeResponse) FromModel(model model.EntranceFee) {
	r.ID = model.ID
	r.ResortID = model.ResortID
	r.Tier = model.Tier
	r.Price = model.Price
	r.PriceInPeso = shared.CentavosToPeso(model.Price)
	r.Metadata.FromModel(model.Metadata)
}

type GetEntranceFeesResponse struct {
	EntranceFees []EntranceFeeResponse `json:"entrance_fees"`
}

func (r *GetEntranceFeesResponse) FromModels(models []model.EntranceFee) {
	r.EntranceFees = make([]EntranceFeeResponse, len(models))
	for i, mod := range models {
		r.EntranceFees[i].FromModel(mod)
	}
}

// FeeLine is one priced tier of a quote.
type FeeLine struct {
	Tier     string `json:"tier"`
	Count    int    `json:"count"`
	Price    int64  `json:"price"`
	Subtotal int64  `json:"subtotal"`
}

type Quote struct {
	Lines []FeeLine `json:"lines"`
	Total int64     `json:"total"`
}
