package dto

import (
	"mime/multipart"

	"tourism/internal/domains/establishment/model"
	"tourism/shared"
	gDto "tourism/shared/dto"
	gModel "tourism/shared/model"
	"tourism/shared/timezone"

	"github.com/google/uuid"
)

type CreateEstablishmentRequest struct {
	OwnerID       string                `json:"owner_id"       validate:"omitempty,uuid4"`
	Type          string                `json:"type"           validate:"required,oneof=resort hotel restaurant landing_area"`
	Name          string                `json:"name"           validate:"required,max=150"`
	Description   string                `json:"description"    validate:"omitempty,max=2000"`
	Address       string                `json:"address"        validate:"required,max=255"`
	ContactNumber string                `json:"contact_number" validate:"omitempty,max=20"`
	Image         *multipart.FileHeader `json:"image"          validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	ImageFile     multipart.File        `json:"-"`
	Active        *bool                 `json:"active"`
}

func (c *CreateEstablishmentRequest) ToModel(user, ownerID, imageURL string) model.Establishment {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Establishment{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Type:          c.Type,
		Name:          c.Name,
		Description:   c.Description,
		Address:       c.Address,
		ContactNumber: c.ContactNumber,
		Image:         imageURL,
		Active:        active,
		Metadata:      gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateEstablishmentRequest struct {
	Name          string                `db:"name"           json:"name"           validate:"omitempty,max=150"`
	Description   string                `db:"description"    json:"description"    validate:"omitempty,max=2000"`
	Address       string                `db:"address"        json:"address"        validate:"omitempty,max=255"`
	ContactNumber string                `db:"contact_number" json:"contact_number" validate:"omitempty,max=20"`
	Image         *multipart.FileHeader `json:"image"        validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
	ImageFile     multipart.File        `json:"-"`
	Active        *bool                 `db:"active"         json:"active"`
}

type EstablishmentResponse struct {
	ID            string `json:"id"`
	OwnerID       string `json:"owner_id"`
	Type          string `json:"type"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
	Image         string `json:"image"`
	Active        bool   `json:"active"`
	gDto.Metadata
}

func (r *EstablishmentResponse) FromModel(model model.Establishment) {
	r.ID = model.ID
	r.OwnerID = model.OwnerID
	r.Type = model.Type
	r.Name = model.Name
	r.Description = model.Description
	r.Address = model.Address
	r.ContactNumber = model.ContactNumber
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetEstablishmentsResponse struct {
	Establishments []EstablishmentResponse `json:"establishments"`
	TotalPage      int                     `json:"total_page"`
	TotalData      int                     `json:"total_data"`
}

func (r *GetEstablishmentsResponse) FromModels(models []model.Establishment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Establishments = make([]EstablishmentResponse, len(models))
	for i, mod := range models {
		r.Establishments[i].FromModel(mod)
	}
}
