package repositories

import (
	"context"
	"errors"

	"stockmap/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

type ZoneRepository interface {
	Create(ctx context.Context, zone *models.Zone) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Zone, error)
	Update(ctx context.Context, zone *models.Zone) error
	List(ctx context.Context) ([]*models.Zone, error)
	// ListTree loads the full layout: every zone with its aisles, shelves
	// and bins attached.
	ListTree(ctx context.Context) ([]*models.Zone, error)
}

type zoneRepo struct {
	db Database
}

func NewZoneRepository(db Database) ZoneRepository {
	return &zoneRepo{db: db}
}

const zoneColumns = `id, name, code, description, color, type, is_active, created_at, updated_at`

func scanZone(row pgx.Row) (*models.Zone, error) {
	z := &models.Zone{}
	err := row.Scan(&z.ID, &z.Name, &z.Code, &z.Description, &z.Color, &z.Type, &z.IsActive, &z.CreatedAt, &z.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return z, nil
}

func (r *zoneRepo) Create(ctx context.Context, zone *models.Zone) error {
	query := `
		INSERT INTO zones (id, name, code, description, color, type, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, zone.ID, zone.Name, zone.Code, zone.Description, zone.Color, zone.Type, zone.IsActive)
	return err
}

func (r *zoneRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Zone, error) {
	query := `SELECT ` + zoneColumns + ` FROM zones WHERE id = $1`
	return scanZone(r.db.QueryRow(ctx, query, id))
}

func (r *zoneRepo) Update(ctx context.Context, zone *models.Zone) error {
	query := `
		UPDATE zones
		SET name = $1, code = $2, description = $3, color = $4, type = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7
	`
	tag, err := r.db.Exec(ctx, query, zone.Name, zone.Code, zone.Description, zone.Color, zone.Type, zone.IsActive, zone.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *zoneRepo) List(ctx context.Context) ([]*models.Zone, error) {
	query := `SELECT ` + zoneColumns + ` FROM zones ORDER BY created_at`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []*models.Zone
	for rows.Next() {
		z := &models.Zone{}
		if err := rows.Scan(&z.ID, &z.Name, &z.Code, &z.Description, &z.Color, &z.Type, &z.IsActive, &z.CreatedAt, &z.UpdatedAt); err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return zones, rows.Err()
}

func (r *zoneRepo) ListTree(ctx context.Context) ([]*models.Zone, error) {
	zones, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(zones) == 0 {
		return zones, nil
	}

	zonesByID := make(map[uuid.UUID]*models.Zone, len(zones))
	for _, z := range zones {
		zonesByID[z.ID] = z
	}

	aislesByID := make(map[uuid.UUID]*models.Aisle)
	if err := r.loadAisles(ctx, zonesByID, aislesByID); err != nil {
		return nil, err
	}
	shelvesByID := make(map[uuid.UUID]*models.Shelf)
	if err := r.loadShelves(ctx, aislesByID, shelvesByID); err != nil {
		return nil, err
	}
	if err := r.loadBins(ctx, shelvesByID); err != nil {
		return nil, err
	}
	return zones, nil
}

func (r *zoneRepo) loadAisles(ctx context.Context, zones map[uuid.UUID]*models.Zone, aisles map[uuid.UUID]*models.Aisle) error {
	query := `SELECT ` + aisleColumns + ` FROM aisles ORDER BY code`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		a := &models.Aisle{}
		if err := scanAisleFields(rows, a); err != nil {
			return err
		}
		if z, ok := zones[a.ZoneID]; ok {
			z.Aisles = append(z.Aisles, a)
			aisles[a.ID] = a
		}
	}
	return rows.Err()
}

func (r *zoneRepo) loadShelves(ctx context.Context, aisles map[uuid.UUID]*models.Aisle, shelves map[uuid.UUID]*models.Shelf) error {
	query := `SELECT ` + shelfColumns + ` FROM shelves ORDER BY level`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		s := &models.Shelf{}
		if err := scanShelfFields(rows, s); err != nil {
			return err
		}
		if a, ok := aisles[s.AisleID]; ok {
			a.Shelves = append(a.Shelves, s)
			shelves[s.ID] = s
		}
	}
	return rows.Err()
}

func (r *zoneRepo) loadBins(ctx context.Context, shelves map[uuid.UUID]*models.Shelf) error {
	query := `SELECT ` + binColumns + ` FROM bins ORDER BY position`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		b := &models.Bin{}
		if err := scanBinFields(rows, b); err != nil {
			return err
		}
		if s, ok := shelves[b.ShelfID]; ok {
			s.Bins = append(s.Bins, b)
		}
	}
	return rows.Err()
}
