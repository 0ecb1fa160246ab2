package repositories

import (
	"context"
	"errors"

	"stockmap/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ShelfRepository interface {
	Create(ctx context.Context, shelf *models.Shelf) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Shelf, error)
	Update(ctx context.Context, shelf *models.Shelf) error
	ListByAisle(ctx context.Context, aisleID uuid.UUID) ([]*models.Shelf, error)
	CountByAisle(ctx context.Context, aisleID uuid.UUID) (int, error)
}

type shelfRepo struct {
	db Database
}

func NewShelfRepository(db Database) ShelfRepository {
	return &shelfRepo{db: db}
}

const shelfColumns = `id, aisle_id, name, code, level, max_weight, weight_unit, is_active, created_at, updated_at`

func scanShelfFields(row pgx.Row, s *models.Shelf) error {
	return row.Scan(&s.ID, &s.AisleID, &s.Name, &s.Code, &s.Level, &s.MaxWeight, &s.WeightUnit, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
}

func (r *shelfRepo) Create(ctx context.Context, shelf *models.Shelf) error {
	query := `
		INSERT INTO shelves (id, aisle_id, name, code, level, max_weight, weight_unit, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, shelf.ID, shelf.AisleID, shelf.Name, shelf.Code, shelf.Level, shelf.MaxWeight, shelf.WeightUnit, shelf.IsActive)
	return err
}

func (r *shelfRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Shelf, error) {
	query := `SELECT ` + shelfColumns + ` FROM shelves WHERE id = $1`
	s := &models.Shelf{}
	err := scanShelfFields(r.db.QueryRow(ctx, query, id), s)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *shelfRepo) Update(ctx context.Context, shelf *models.Shelf) error {
	query := `
		UPDATE shelves
		SET name = $1, code = $2, level = $3, max_weight = $4, weight_unit = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7
	`
	tag, err := r.db.Exec(ctx, query, shelf.Name, shelf.Code, shelf.Level, shelf.MaxWeight, shelf.WeightUnit, shelf.IsActive, shelf.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *shelfRepo) ListByAisle(ctx context.Context, aisleID uuid.UUID) ([]*models.Shelf, error) {
	query := `SELECT ` + shelfColumns + ` FROM shelves WHERE aisle_id = $1 ORDER BY level`
	rows, err := r.db.Query(ctx, query, aisleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shelves []*models.Shelf
	for rows.Next() {
		s := &models.Shelf{}
		if err := scanShelfFields(rows, s); err != nil {
			return nil, err
		}
		shelves = append(shelves, s)
	}
	return shelves, rows.Err()
}

func (r *shelfRepo) CountByAisle(ctx context.Context, aisleID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM shelves WHERE aisle_id = $1`, aisleID).Scan(&count)
	return count, err
}
