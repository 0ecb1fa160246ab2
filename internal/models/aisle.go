package models

import (
	"time"

	"github.com/google/uuid"
)

// DimensionUnit is the measurement unit for aisle dimensions.
type DimensionUnit string

const (
	UnitFeet   DimensionUnit = "feet"
	UnitMeters DimensionUnit = "meters"
)

type Aisle struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	ZoneID      uuid.UUID     `json:"zone_id" db:"zone_id"`
	Name        string        `json:"name" db:"name"`
	Code        string        `json:"code" db:"code"`
	Description *string       `json:"description,omitempty" db:"description"`
	MaxHeight   *float64      `json:"max_height,omitempty" db:"max_height"`
	Width       *float64      `json:"width,omitempty" db:"width"`
	Length      *float64      `json:"length,omitempty" db:"length"`
	Unit        DimensionUnit `json:"unit" db:"unit"`
	Shelves     []*Shelf      `json:"shelves,omitempty"`
	IsActive    bool          `json:"is_active" db:"is_active"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}
