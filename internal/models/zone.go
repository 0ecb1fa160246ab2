package models

import (
	"time"

	"github.com/google/uuid"
)

// ZoneType classifies what a zone is used for. Only storage zones carry
// aisles that matter for put-away.
type ZoneType string

const (
	ZoneTypeStorage        ZoneType = "storage"
	ZoneTypeReceiving      ZoneType = "receiving"
	ZoneTypeShipping       ZoneType = "shipping"
	ZoneTypeReturns        ZoneType = "returns"
	ZoneTypeStaging        ZoneType = "staging"
	ZoneTypeQualityControl ZoneType = "quality_control"
	ZoneTypeCustom         ZoneType = "custom"
)

// ZoneTypes lists every valid zone type, in display order.
var ZoneTypes = []ZoneType{
	ZoneTypeStorage,
	ZoneTypeReceiving,
	ZoneTypeShipping,
	ZoneTypeReturns,
	ZoneTypeStaging,
	ZoneTypeQualityControl,
	ZoneTypeCustom,
}

// Valid reports whether t is one of the known zone types.
func (t ZoneType) Valid() bool {
	for _, zt := range ZoneTypes {
		if t == zt {
			return true
		}
	}
	return false
}

type Zone struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Code        string    `json:"code" db:"code"`
	Description *string   `json:"description,omitempty" db:"description"`
	Color       string    `json:"color" db:"color"`
	Type        ZoneType  `json:"type" db:"type"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	Aisles      []*Aisle  `json:"aisles,omitempty"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
