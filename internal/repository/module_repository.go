package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/academia-dev/academia-api/internal/models"
)

// ModuleRepository provides read access to modules across courses.
type ModuleRepository struct {
	db *sqlx.DB
}

// NewModuleRepository constructs the repository.
func NewModuleRepository(db *sqlx.DB) *ModuleRepository {
	return &ModuleRepository{db: db}
}

// List returns all modules with their cells attached.
func (r *ModuleRepository) List(ctx context.Context) ([]models.Module, error) {
	query := fmt.Sprintf(`SELECT %s FROM modules ORDER BY course_id, id`, moduleColumns)
	var modules []models.Module
	if err := r.db.SelectContext(ctx, &modules, query); err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	if err := r.attachCells(ctx, modules); err != nil {
		return nil, err
	}
	return modules, nil
}

// FindByID returns a module with its cells.
func (r *ModuleRepository) FindByID(ctx context.Context, id int64) (*models.Module, error) {
	query := fmt.Sprintf(`SELECT %s FROM modules WHERE id = $1`, moduleColumns)
	var module models.Module
	if err := r.db.GetContext(ctx, &module, query, id); err != nil {
		return nil, err
	}
	modules := []models.Module{module}
	if err := r.attachCells(ctx, modules); err != nil {
		return nil, err
	}
	return &modules[0], nil
}

// Exists reports whether a module with the given ID exists.
func (r *ModuleRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, `SELECT 1 FROM modules WHERE id = $1 LIMIT 1`, id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check module: %w", err)
	}
	return true, nil
}

func (r *ModuleRepository) attachCells(ctx context.Context, modules []models.Module) error {
	if len(modules) == 0 {
		return nil
	}
	moduleIDs := make([]int64, len(modules))
	for i, m := range modules {
		moduleIDs[i] = m.ID
	}
	query, args, err := sqlx.In(fmt.Sprintf(`SELECT %s FROM cells WHERE module_id IN (?) ORDER BY id`, cellColumns), moduleIDs)
	if err != nil {
		return fmt.Errorf("build cell query: %w", err)
	}
	var cells []models.Cell
	if err := r.db.SelectContext(ctx, &cells, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("load cells: %w", err)
	}
	cellsByModule := make(map[int64][]models.Cell, len(modules))
	for _, cell := range cells {
		cellsByModule[cell.ModuleID] = append(cellsByModule[cell.ModuleID], cell)
	}
	for i := range modules {
		modules[i].Cells = cellsByModule[modules[i].ID]
	}
	return nil
}
