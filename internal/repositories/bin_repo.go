package repositories

import (
	"context"
	"errors"

	"stockmap/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BinRepository interface {
	Create(ctx context.Context, bin *models.Bin) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Bin, error)
	Update(ctx context.Context, bin *models.Bin) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByShelf(ctx context.Context, shelfID uuid.UUID) ([]*models.Bin, error)
	CountByShelf(ctx context.Context, shelfID uuid.UUID) (int, error)
}

type binRepo struct {
	db Database
}

func NewBinRepository(db Database) BinRepository {
	return &binRepo{db: db}
}

const binColumns = `id, shelf_id, name, code, position, capacity, current_stock, reserved, is_active, created_at, updated_at`

func scanBinFields(row pgx.Row, b *models.Bin) error {
	return row.Scan(&b.ID, &b.ShelfID, &b.Name, &b.Code, &b.Position, &b.Capacity, &b.CurrentStock, &b.Reserved, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
}

func (r *binRepo) Create(ctx context.Context, bin *models.Bin) error {
	query := `
		INSERT INTO bins (id, shelf_id, name, code, position, capacity, current_stock, reserved, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, bin.ID, bin.ShelfID, bin.Name, bin.Code, bin.Position, bin.Capacity, bin.CurrentStock, bin.Reserved, bin.IsActive)
	return err
}

func (r *binRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Bin, error) {
	query := `SELECT ` + binColumns + ` FROM bins WHERE id = $1`
	b := &models.Bin{}
	err := scanBinFields(r.db.QueryRow(ctx, query, id), b)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *binRepo) Update(ctx context.Context, bin *models.Bin) error {
	query := `
		UPDATE bins
		SET name = $1, code = $2, position = $3, capacity = $4, current_stock = $5, reserved = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8
	`
	tag, err := r.db.Exec(ctx, query, bin.Name, bin.Code, bin.Position, bin.Capacity, bin.CurrentStock, bin.Reserved, bin.IsActive, bin.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *binRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM bins WHERE id = $1`, id)
	return err
}

func (r *binRepo) ListByShelf(ctx context.Context, shelfID uuid.UUID) ([]*models.Bin, error) {
	query := `SELECT ` + binColumns + ` FROM bins WHERE shelf_id = $1 ORDER BY position`
	rows, err := r.db.Query(ctx, query, shelfID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bins []*models.Bin
	for rows.Next() {
		b := &models.Bin{}
		if err := scanBinFields(rows, b); err != nil {
			return nil, err
		}
		bins = append(bins, b)
	}
	return bins, rows.Err()
}

func (r *binRepo) CountByShelf(ctx context.Context, shelfID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bins WHERE shelf_id = $1`, shelfID).Scan(&count)
	return count, err
}
