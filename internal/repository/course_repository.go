package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/academia-dev/academia-api/internal/models"
)

// CourseRepository handles persistence of the course→module→cell hierarchy.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

const courseColumns = `id, name, description, total_hours, prerequisites, required_materials, created_at, updated_at`
const moduleColumns = `id, course_id, name, description, hours, created_at, updated_at`
const cellColumns = `id, module_id, name, description, hours, technical_code, created_at, updated_at`

// List returns courses with their nested modules and cells, plus total count.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s FROM courses ORDER BY created_at DESC LIMIT %d OFFSET %d`, courseColumns, size, offset)
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM courses`); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	if err := r.attachModules(ctx, courses); err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

// FindByID returns a course with its nested modules and cells.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	query := fmt.Sprintf(`SELECT %s FROM courses WHERE id = $1`, courseColumns)
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	courses := []models.Course{course}
	if err := r.attachModules(ctx, courses); err != nil {
		return nil, err
	}
	return &courses[0], nil
}

// attachModules loads modules and cells for the given courses in two queries.
func (r *CourseRepository) attachModules(ctx context.Context, courses []models.Course) error {
	if len(courses) == 0 {
		return nil
	}
	courseIDs := make([]int64, len(courses))
	for i, c := range courses {
		courseIDs[i] = c.ID
	}

	query, args, err := sqlx.In(fmt.Sprintf(`SELECT %s FROM modules WHERE course_id IN (?) ORDER BY id`, moduleColumns), courseIDs)
	if err != nil {
		return fmt.Errorf("build module query: %w", err)
	}
	var modules []models.Module
	if err := r.db.SelectContext(ctx, &modules, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("load modules: %w", err)
	}

	if len(modules) > 0 {
		moduleIDs := make([]int64, len(modules))
		for i, m := range modules {
			moduleIDs[i] = m.ID
		}
		query, args, err = sqlx.In(fmt.Sprintf(`SELECT %s FROM cells WHERE module_id IN (?) ORDER BY id`, cellColumns), moduleIDs)
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
	}

	modulesByCourse := make(map[int64][]models.Module, len(courses))
	for _, m := range modules {
		modulesByCourse[m.CourseID] = append(modulesByCourse[m.CourseID], m)
	}
	for i := range courses {
		courses[i].Modules = modulesByCourse[courses[i].ID]
	}
	return nil
}

// Create inserts a course and its nested modules and cells in one transaction.
func (r *CourseRepository) Create(ctx context.Context, input models.CourseInput) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin course create: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	var courseID int64
	const insertCourse = `INSERT INTO courses (name, description, total_hours, prerequisites, required_materials, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := tx.GetContext(ctx, &courseID, insertCourse, input.Name, input.Description, input.TotalHours, input.Prerequisites, input.RequiredMaterials, now, now); err != nil {
		return 0, fmt.Errorf("insert course: %w", err)
	}

	if err := insertModules(ctx, tx, courseID, input.Modules, now); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit course create: %w", err)
	}
	return courseID, nil
}

// Update replaces the course row and recreates its entire module/cell tree.
// Child rows get fresh IDs on every update.
func (r *CourseRepository) Update(ctx context.Context, id int64, input models.CourseInput) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin course update: %w", err)
	}
	defer tx.Rollback()

	if err := deleteCourseChildren(ctx, tx, id); err != nil {
		return err
	}

	now := time.Now().UTC()
	const updateCourse = `UPDATE courses SET name = $2, description = $3, total_hours = $4, prerequisites = $5, required_materials = $6, updated_at = $7 WHERE id = $1`
	res, err := tx.ExecContext(ctx, updateCourse, id, input.Name, input.Description, input.TotalHours, input.Prerequisites, input.RequiredMaterials, now)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}

	if err := insertModules(ctx, tx, id, input.Modules, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit course update: %w", err)
	}
	return nil
}

// Delete removes a course and all dependent rows in explicit dependency order.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin course delete: %w", err)
	}
	defer tx.Rollback()

	if err := deleteCourseChildren(ctx, tx, id); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit course delete: %w", err)
	}
	return nil
}

// deleteCourseChildren removes attendance, cell, enrollment and module rows
// belonging to a course, children before parents.
func deleteCourseChildren(ctx context.Context, tx *sqlx.Tx, courseID int64) error {
	const deleteAttendances = `DELETE FROM attendances WHERE cell_id IN (
SELECT c.id FROM cells c JOIN modules m ON m.id = c.module_id WHERE m.course_id = $1)`
	if _, err := tx.ExecContext(ctx, deleteAttendances, courseID); err != nil {
		return fmt.Errorf("delete course attendances: %w", err)
	}
	const deleteCells = `DELETE FROM cells WHERE module_id IN (SELECT id FROM modules WHERE course_id = $1)`
	if _, err := tx.ExecContext(ctx, deleteCells, courseID); err != nil {
		return fmt.Errorf("delete course cells: %w", err)
	}
	const deleteEnrollments = `DELETE FROM enrollments WHERE module_id IN (SELECT id FROM modules WHERE course_id = $1)`
	if _, err := tx.ExecContext(ctx, deleteEnrollments, courseID); err != nil {
		return fmt.Errorf("delete course enrollments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM modules WHERE course_id = $1`, courseID); err != nil {
		return fmt.Errorf("delete course modules: %w", err)
	}
	return nil
}

// insertModules inserts the nested module/cell tree for a course.
func insertModules(ctx context.Context, tx *sqlx.Tx, courseID int64, modules []models.ModuleInput, now time.Time) error {
	const insertModule = `INSERT INTO modules (course_id, name, description, hours, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	const insertCell = `INSERT INTO cells (module_id, name, description, hours, technical_code, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, module := range modules {
		var moduleID int64
		if err := tx.GetContext(ctx, &moduleID, insertModule, courseID, module.Name, module.Description, module.Hours, now, now); err != nil {
			return fmt.Errorf("insert module: %w", err)
		}
		for _, cell := range module.Cells {
			if _, err := tx.ExecContext(ctx, insertCell, moduleID, cell.Name, cell.Description, cell.Hours, cell.TechnicalCode, now, now); err != nil {
				return fmt.Errorf("insert cell: %w", err)
			}
		}
	}
	return nil
}
