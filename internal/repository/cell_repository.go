package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/academia-dev/academia-api/internal/models"
)

// CellRepository provides read access to curriculum cells.
type CellRepository struct {
	db *sqlx.DB
}

// NewCellRepository constructs the repository.
func NewCellRepository(db *sqlx.DB) *CellRepository {
	return &CellRepository{db: db}
}

// List returns all cells.
func (r *CellRepository) List(ctx context.Context) ([]models.Cell, error) {
	query := fmt.Sprintf(`SELECT %s FROM cells ORDER BY module_id, id`, cellColumns)
	var cells []models.Cell
	if err := r.db.SelectContext(ctx, &cells, query); err != nil {
		return nil, fmt.Errorf("list cells: %w", err)
	}
	return cells, nil
}

// ListByModule returns the cells belonging to a module.
func (r *CellRepository) ListByModule(ctx context.Context, moduleID int64) ([]models.Cell, error) {
	query := fmt.Sprintf(`SELECT %s FROM cells WHERE module_id = $1 ORDER BY id`, cellColumns)
	var cells []models.Cell
	if err := r.db.SelectContext(ctx, &cells, query, moduleID); err != nil {
		return nil, fmt.Errorf("list module cells: %w", err)
	}
	return cells, nil
}

// FindByID returns a cell by identifier.
func (r *CellRepository) FindByID(ctx context.Context, id int64) (*models.Cell, error) {
	query := fmt.Sprintf(`SELECT %s FROM cells WHERE id = $1`, cellColumns)
	var cell models.Cell
	if err := r.db.GetContext(ctx, &cell, query, id); err != nil {
		return nil, err
	}
	return &cell, nil
}

// Update rewrites a cell's editable fields. Returns sql.ErrNoRows when the
// cell does not exist.
func (r *CellRepository) Update(ctx context.Context, id int64, input models.CellInput) error {
	const query = `UPDATE cells
		SET name = $1, description = $2, hours = $3, technical_code = $4, updated_at = now()
		WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, input.Name, input.Description, input.Hours, input.TechnicalCode, id)
	if err != nil {
		return fmt.Errorf("update cell: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update cell: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Exists reports whether a cell with the given ID exists.
func (r *CellRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, `SELECT 1 FROM cells WHERE id = $1 LIMIT 1`, id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check cell: %w", err)
	}
	return true, nil
}
