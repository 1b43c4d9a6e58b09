package dto

import (
	"time"

	"hotel/shared/constant"
	"hotel/shared/model"
	"hotel/shared/timezone"
)

// Metadata is the audit block embedded in admin-facing responses. Timestamps are rendered in
// the application timezone; a record that was never stamped renders them empty.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(source model.Metadata) {
	m.CreatedAt = stamp(source.CreatedAt)
	m.ModifiedAt = stamp(source.ModifiedAt)
	m.CreatedBy = source.CreatedBy
	m.ModifiedBy = source.ModifiedBy
}

func stamp(at time.Time) string {
	if at.IsZero() {
		return constant.Empty
	}

	return timezone.Format(at, constant.DateFormat)
}
