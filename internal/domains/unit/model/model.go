package model

import (
	estModel "tourism/internal/domains/establishment/model"
	"tourism/shared/constant"
	"tourism/shared/model"
)

const (
	TableName  = "units"
	EntityName = "unit"

	FieldID              = "id"
	FieldEstablishmentID = "establishment_id"
	FieldKind            = "kind"
	FieldName            = "name"
	FieldDescription     = "description"
	FieldCapacity        = "capacity"
	FieldPrice           = "price"
	FieldImage           = "image"
	FieldStatus          = "status"
)

const (
	KindRoom    = "room"
	KindTable   = "table"
	KindService = "service"
)

const (
	StatusAvailable   = "available"
	StatusUnavailable = "unavailable"
)

// Unit is a bookable room, table or service. Price is in centavos.
type Unit struct {
	ID              string `db:"id"`
	EstablishmentID string `db:"establishment_id"`
	Kind            string `db:"kind"`
	Name            string `db:"name"`
	Description     string `db:"description"`
	Capacity        int    `db:"capacity"`
	Price           int64  `db:"price"`
	Image           string `db:"image"`
	Status          string `db:"status"`
	model.Metadata
}

// KindFor maps an establishment type to the kind of unit it offers.
func KindFor(establishmentType string) string {
	switch establishmentType {
	case estModel.TypeResort, estModel.TypeHotel:
		return KindRoom
	case estModel.TypeRestaurant:
		return KindTable
	case estModel.TypeLandingArea:
		return KindService
	default:
		return constant.Empty
	}
}

func (u Unit) IsAvailable() bool {
	return u.Status == StatusAvailable
}
