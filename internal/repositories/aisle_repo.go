package repositories

import (
	"context"
	"errors"

	"stockmap/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AisleRepository interface {
	Create(ctx context.Context, aisle *models.Aisle) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Aisle, error)
	Update(ctx context.Context, aisle *models.Aisle) error
	ListByZone(ctx context.Context, zoneID uuid.UUID) ([]*models.Aisle, error)
	CountByZone(ctx context.Context, zoneID uuid.UUID) (int, error)
}

type aisleRepo struct {
	db Database
}

func NewAisleRepository(db Database) AisleRepository {
	return &aisleRepo{db: db}
}

const aisleColumns = `id, zone_id, name, code, description, max_height, width, length, unit, is_active, created_at, updated_at`

func scanAisleFields(row pgx.Row, a *models.Aisle) error {
	return row.Scan(&a.ID, &a.ZoneID, &a.Name, &a.Code, &a.Description, &a.MaxHeight, &a.Width, &a.Length, &a.Unit, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
}

func (r *aisleRepo) Create(ctx context.Context, aisle *models.Aisle) error {
	query := `
		INSERT INTO aisles (id, zone_id, name, code, description, max_height, width, length, unit, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, aisle.ID, aisle.ZoneID, aisle.Name, aisle.Code, aisle.Description, aisle.MaxHeight, aisle.Width, aisle.Length, aisle.Unit, aisle.IsActive)
	return err
}

func (r *aisleRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Aisle, error) {
	query := `SELECT ` + aisleColumns + ` FROM aisles WHERE id = $1`
	a := &models.Aisle{}
	err := scanAisleFields(r.db.QueryRow(ctx, query, id), a)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *aisleRepo) Update(ctx context.Context, aisle *models.Aisle) error {
	query := `
		UPDATE aisles
		SET name = $1, code = $2, description = $3, max_height = $4, width = $5, length = $6, unit = $7, is_active = $8, updated_at = NOW()
		WHERE id = $9
	`
	tag, err := r.db.Exec(ctx, query, aisle.Name, aisle.Code, aisle.Description, aisle.MaxHeight, aisle.Width, aisle.Length, aisle.Unit, aisle.IsActive, aisle.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *aisleRepo) ListByZone(ctx context.Context, zoneID uuid.UUID) ([]*models.Aisle, error) {
	query := `SELECT ` + aisleColumns + ` FROM aisles WHERE zone_id = $1 ORDER BY code`
	rows, err := r.db.Query(ctx, query, zoneID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var aisles []*models.Aisle
	for rows.Next() {
		a := &models.Aisle{}
		if err := scanAisleFields(rows, a); err != nil {
			return nil, err
		}
		aisles = append(aisles, a)
	}
	return aisles, rows.Err()
}

func (r *aisleRepo) CountByZone(ctx context.Context, zoneID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM aisles WHERE zone_id = $1`, zoneID).Scan(&count)
	return count, err
}
