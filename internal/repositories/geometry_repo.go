package repositories

import (
	"context"

	"stockmap/internal/models"

	"github.com/google/uuid"
)

type GeometryRepository interface {
	// Upsert writes one zone's geometry as a single atomic record.
	Upsert(ctx context.Context, geom *models.ZoneGeometry) error
	// UpsertBatch writes a set of geometries in one transaction, for atomic
	// layout resets.
	UpsertBatch(ctx context.Context, geoms []*models.ZoneGeometry) error
	GetByZone(ctx context.Context, zoneID uuid.UUID) (*models.ZoneGeometry, error)
	ListAll(ctx context.Context) ([]*models.ZoneGeometry, error)
	Delete(ctx context.Context, zoneID uuid.UUID) error
}

type geometryRepo struct {
	db Database
}

func NewGeometryRepository(db Database) GeometryRepository {
	return &geometryRepo{db: db}
}

const geometryUpsert = `
	INSERT INTO zone_geometry (zone_id, x, y, width, height, updated_at)
	VALUES ($1, $2, $3, $4, $5, NOW())
	ON CONFLICT (zone_id) DO UPDATE SET x = EXCLUDED.x, y = EXCLUDED.y, width = EXCLUDED.width, height = EXCLUDED.height, updated_at = NOW()
`

func (r *geometryRepo) Upsert(ctx context.Context, geom *models.ZoneGeometry) error {
	_, err := r.db.Exec(ctx, geometryUpsert, geom.ZoneID, geom.X, geom.Y, geom.Width, geom.Height)
	return err
}

func (r *geometryRepo) UpsertBatch(ctx context.Context, geoms []*models.ZoneGeometry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, g := range geoms {
		if _, err := tx.Exec(ctx, geometryUpsert, g.ZoneID, g.X, g.Y, g.Width, g.Height); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *geometryRepo) GetByZone(ctx context.Context, zoneID uuid.UUID) (*models.ZoneGeometry, error) {
	query := `SELECT zone_id, x, y, width, height, updated_at FROM zone_geometry WHERE zone_id = $1`
	g := &models.ZoneGeometry{}
	err := r.db.QueryRow(ctx, query, zoneID).Scan(&g.ZoneID, &g.X, &g.Y, &g.Width, &g.Height, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *geometryRepo) ListAll(ctx context.Context) ([]*models.ZoneGeometry, error) {
	query := `SELECT zone_id, x, y, width, height, updated_at FROM zone_geometry ORDER BY zone_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var geoms []*models.ZoneGeometry
	for rows.Next() {
		g := &models.ZoneGeometry{}
		if err := rows.Scan(&g.ZoneID, &g.X, &g.Y, &g.Width, &g.Height, &g.UpdatedAt); err != nil {
			return nil, err
		}
		geoms = append(geoms, g)
	}
	return geoms, rows.Err()
}

func (r *geometryRepo) Delete(ctx context.Context, zoneID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM zone_geometry WHERE zone_id = $1`, zoneID)
	return err
}
