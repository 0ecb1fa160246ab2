package models

import (
	"time"

	"github.com/google/uuid"
)

// ZoneGeometry is the persisted canvas rectangle for a zone. It lives in a
// side table keyed by zone id and is created and deleted together with the
// zone itself. Position and dimensions always persist as one record.
type ZoneGeometry struct {
	ZoneID    uuid.UUID `json:"zone_id" db:"zone_id"`
	X         float64   `json:"x" db:"x"`
	Y         float64   `json:"y" db:"y"`
	Width     float64   `json:"width" db:"width"`
	Height    float64   `json:"height" db:"height"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
