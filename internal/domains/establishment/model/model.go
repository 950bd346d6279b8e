package model

import (
	"tourism/shared/constant"
	"tourism/shared/model"
)

const (
	TableName  = "establishments"
	EntityName = "establishment"

	FieldID            = "id"
	FieldOwnerID       = "owner_id"
	FieldType          = "type"
	FieldName          = "name"
	FieldDescription   = "description"
	FieldAddress       = "address"
	FieldContactNumber = "contact_number"
	FieldImage         = "image"
	FieldActive        = "active"
)

const (
	TypeResort      = "resort"
	TypeHotel       = "hotel"
	TypeRestaurant  = "restaurant"
	TypeLandingArea = "landing_area"
)

type Establishment struct {
	ID            string `db:"id"`
	OwnerID       string `db:"owner_id"`
	Type          string `db:"type"`
	Name          string `db:"name"`
	Description   string `db:"description"`
	Address       string `db:"address"`
	ContactNumber string `db:"contact_number"`
	Image         string `db:"image"`
	Active        bool   `db:"active"`
	model.Metadata
}

// OperatorRole returns the role allowed to own an establishment of the given type.
func OperatorRole(establishmentType string) string {
	switch establishmentType {
	case TypeResort:
		return constant.RoleResortOperator
	case TypeHotel:
		return constant.RoleHotelOperator
	case TypeRestaurant:
		return constant.RoleRestaurantOperator
	case TypeLandingArea:
		return constant.RoleLandingAreaOperator
	default:
		return constant.Empty
	}
}

// TypeForRole is the inverse of OperatorRole.
func TypeForRole(role string) string {
	for _, establishmentType := range []string{TypeResort, TypeHotel, TypeRestaurant, TypeLandingArea} {
		if OperatorRole(establishmentType) == role {
			return establishmentType
		}
	}

	return constant.Empty
}

func (e Establishment) IsOwnedBy(userID string) bool {
	return e.OwnerID != constant.Empty && e.OwnerID == userID
}
