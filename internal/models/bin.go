package models

import (
	"time"

	"github.com/google/uuid"
)

type Bin struct {
	ID           uuid.UUID `json:"id" db:"id"`
	ShelfID      uuid.UUID `json:"shelf_id" db:"shelf_id"`
	Name         string    `json:"name" db:"name"`
	Code         string    `json:"code" db:"code"`
	Position     int       `json:"position" db:"position"` // slot order along the shelf, 1-based
	Capacity     *int      `json:"capacity,omitempty" db:"capacity"`
	CurrentStock int       `json:"current_stock" db:"current_stock"`
	Reserved     bool      `json:"reserved" db:"reserved"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Available returns the remaining capacity of the bin, or 0 when no
// capacity is defined (an uncapped bin cannot verify fit).
func (b *Bin) Available() int {
	if b.Capacity == nil {
		return 0
	}
	return *b.Capacity - b.CurrentStock
}
