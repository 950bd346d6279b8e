package dto

import (
	"mime/multipart"

	"tourism/internal/domains/boat/model"
	"tourism/shared"
	gDto "tourism/shared/dto"
	gModel "tourism/shared/model"
	"tourism/shared/timezone"

	"github.com/google/uuid"
)

type CreateBoatRequest struct {
	OwnerID           string                `json:"owner_id"            validate:"omitempty,uuid4"`
	Name              string                `json:"name"                validate:"required,max=100"`
	Description       string                `json:"description"         validate:"omitempty,max=2000"`
	Capacity          int                   `json:"capacity"            validate:"required,min=1"`
	PricePerPassenger *int64                `json:"price_per_passenger" validate:"required,min=0"`
	TotalSlots        int                   `json:"total_slots"         validate:"required,min=1"`
	Image             *multipart.FileHeader `json:"image"               validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	ImageFile         multipart.File        `json:"-"`
	Active            *bool                 `json:"active"`
}

func (c *CreateBoatRequest) ToModel(user, ownerID, imageURL string) model.Boat {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	var price int64
	if c.PricePerPassenger != nil {
		price = *c.PricePerPassenger
	}

	return model.Boat{
		ID:                uuid.NewString(),
		OwnerID:           ownerID,
		Name:              c.Name,
		Description:       c.Description,
		Capacity:          c.Capacity,
		PricePerPassenger: price,
		TotalSlots:        c.TotalSlots,
		AvailableSlots:    c.TotalSlots,
		Image:             imageURL,
		Active:            active,
		Metadata:          gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdateBoatRequest has no available_slots field; it only moves with TotalSlots.
type UpdateBoatRequest struct {
	Name              string                `db:"name"                json:"name"                validate:"omitempty,max=100"`
	Description       string                `db:"description"         json:"description"         validate:"omitempty,max=2000"`
	Capacity          *int                  `db:"capacity"            json:"capacity"            validate:"omitempty,min=1"`
	PricePerPassenger *int64                `db:"price_per_passenger" json:"price_per_passenger" validate:"omitempty,min=0"`
	TotalSlots        *int                  `db:"total_slots"         json:"total_slots"         validate:"omitempty,min=0"`
	Image             *multipart.FileHeader `json:"image"             validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	ImageFile         multipart.File        `json:"-"`
	Active            *bool                 `db:"active"              json:"active"`
}

type BoatResponse struct {
	ID                string  `json:"id"`
	OwnerID           string  `json:"owner_id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Capacity          int     `json:"capacity"`
	PricePerPassenger int64   `json:"price_per_passenger"`
	PriceInPeso       float64 `json:"price_in_peso"`
	TotalSlots        int     `json:"total_slots"`
	AvailableSlots    int     `json:"available_slots"`
	Image             string  `json:"image"`
	Active            bool    `json:"active"`
	gDto.Metadata
}

func (r *BoatResponse) FromModel(model model.Boat) {
	r.ID = model.ID
	r.OwnerID = model.OwnerID
	r.Name = model.Name
	r.Description = model.Description
	r.Capacity = model.Capacity
	r.PricePerPassenger = model.PricePerPassenger
	r.PriceInPeso = shared.CentavosToPeso(model.PricePerPassenger)
	r.TotalSlots = model.TotalSlots
	r.AvailableSlots = model.AvailableSlots
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetBoatsResponse struct {
	Boats     []BoatResponse `json:"boats"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetBoatsResponse) FromModels(models []model.Boat, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Boats = make([]BoatResponse, len(models))
	for i, mod := range models {
		r.Boats[i].FromModel(mod)
	}
}
