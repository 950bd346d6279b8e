package dto

import (
	"mime/multipart"

	"tourism/internal/domains/unit/model"
	"tourism/shared"
	gDto "tourism/shared/dto"
	gModel "tourism/shared/model"
	"tourism/shared/timezone"

	"github.com/google/uuid"
)

type CreateUnitRequest struct {
	EstablishmentID string                `json:"establishment_id" validate:"required,uuid4"`
	Name            string                `json:"name"             validate:"required,max=100"`
	Description     string                `json:"description"      validate:"omitempty,max=2000"`
	Capacity        int                   `json:"capacity"         validate:"required,min=1"`
	Price           *int64                `json:"price"            validate:"required,min=0"`
	Status          string                `json:"status"           validate:"omitempty,oneof=available unavailable"`
	Image           *multipart.FileHeader `json:"image"            validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	ImageFile       multipart.File        `json:"-"`
}

func (c *CreateUnitRequest) ToModel(user, kind, imageURL string) model.Unit {
	status := c.Status
	if status == "" {
		status = model.StatusAvailable
	}

	var price int64
	if c.Price != nil {
		price = *c.Price
	}

	return model.Unit{
		ID:              uuid.NewString(),
		EstablishmentID: c.EstablishmentID,
		Kind:            kind,
		Name:            c.Name,
		Description:     c.Description,
		Capacity:        c.Capacity,
		Price:           price,
		Image:           imageURL,
		Status:          status,
		Metadata:        gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateUnitRequest struct {
	Name        string                `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description string                `db:"description" json:"description" validate:"omitempty,max=2000"`
	Capacity    *int                  `db:"capacity"    json:"capacity"    validate:"omitempty,min=1"`
	Price       *int64                `db:"price"       json:"price"       validate:"omitempty,min=0"`
	Status      string                `db:"status"      json:"status"      validate:"omitempty,oneof=available unavailable"`
	Image       *multipart.FileHeader `json:"image"     validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	ImageFile   multipart.File        `json:"-"`
}

type UnitResponse struct {
	ID              string  `json:"id"`
	EstablishmentID string  `json:"establishment_id"`
	Kind            string  `json:"kind"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Capacity        int     `json:"capacity"`
	Price           int64   `json:"price"`
	PriceInPeso     float64 `json:"price_in_peso"`
	Image           string  `json:"image"`
	Status          string  `json:"status"`
	gDto.Metadata
}

func (r *UnitResponse) FromModel(model model.Unit) {
	r.ID = model.ID
	r.EstablishmentID = model.EstablishmentID
	r.Kind = model.Kind
	r.Name = model.Name
	r.Description = model.Description
	r.Capacity = model.Capacity
	r.Price = model.Price
	r.PriceInPeso = shared.CentavosToPeso(model.Price)
	r.Image = model.Image
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetUnitsResponse struct {
	Units     []UnitResponse `json:"units"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUnitsResponse) FromModels(models []model.Unit, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Units = make([]UnitResponse, len(models))
	for i, mod := range models {
		r.Units[i].FromModel(mod)
	}
}
