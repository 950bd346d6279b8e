package dto

import (
	"time"

	"tourism/shared/constant"
	"tourism/shared/model"
	"tourism/shared/timezone"
)

// Metadata is the audit block every resource response carries. Timestamps are
// rendered in the application timezone; unset ones stay empty.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by"`
}

func NewMetadata(src model.Metadata) Metadata {
	return Metadata{
		CreatedAt:  formatTimestamp(src.CreatedAt),
		ModifiedAt: formatTimestamp(src.ModifiedAt),
		CreatedBy:  src.CreatedBy,
		ModifiedBy: src.ModifiedBy,
	}
}

func (m *Metadata) FromModel(src model.Metadata) {
	*m = NewMetadata(src)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return constant.Empty
	}

	return timezone.Format(t, constant.DateFormat)
}
