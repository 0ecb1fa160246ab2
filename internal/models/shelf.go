package models

import (
	"time"

	"github.com/google/uuid"
)

type Shelf struct {
	ID         uuid.UUID `json:"id" db:"id"`
	AisleID    uuid.UUID `json:"aisle_id" db:"aisle_id"`
	Name       string    `json:"name" db:"name"`
	Code       string    `json:"code" db:"code"`
	Level      int       `json:"level" db:"level"` // vertical position within the aisle, 1 = bottom
	MaxWeight  *float64  `json:"max_weight,omitempty" db:"max_weight"`
	WeightUnit *string   `json:"weight_unit,omitempty" db:"weight_unit"`
	Bins       []*Bin    `json:"bins,omitempty"`
	IsActive   bool      `json:"is_active" db:"is_active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
