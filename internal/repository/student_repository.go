package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/academia-dev/academia-api/internal/models"
)

// StudentRepository handles persistence of students and their enrollments.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `id, name, cpf, email, phone, age, wears_glasses, handedness, course_id, created_at, updated_at`
const enrollmentColumns = `id, student_id, module_id, status, start_date, end_date, created_at, updated_at`

// List returns students with total count.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s FROM students ORDER BY name ASC LIMIT %d OFFSET %d`, studentColumns, size, offset)
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM students`); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// FindByID returns a student by identifier without related rows.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE id = $1`, studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// ListEnrollments returns the enrollment rows of a student, modules attached.
func (r *StudentRepository) ListEnrollments(ctx context.Context, studentID int64) ([]models.Enrollment, error) {
	query := fmt.Sprintf(`SELECT %s FROM enrollments WHERE student_id = $1 ORDER BY module_id`, enrollmentColumns)
	var enrollments []models.Enrollment
	if err := r.db.SelectContext(ctx, &enrollments, query, studentID); err != nil {
		return nil, fmt.Errorf("list student enrollments: %w", err)
	}
	if len(enrollments) == 0 {
		return enrollments, nil
	}

	moduleIDs := make([]int64, len(enrollments))
	for i, e := range enrollments {
		moduleIDs[i] = e.ModuleID
	}
	inQuery, args, err := sqlx.In(fmt.Sprintf(`SELECT %s FROM modules WHERE id IN (?)`, moduleColumns), moduleIDs)
	if err != nil {
		return nil, fmt.Errorf("build module query: %w", err)
	}
	var modules []models.Module
	if err := r.db.SelectContext(ctx, &modules, r.db.Rebind(inQuery), args...); err != nil {
		return nil, fmt.Errorf("load enrollment modules: %w", err)
	}
	byID := make(map[int64]models.Module, len(modules))
	for _, m := range modules {
		byID[m.ID] = m
	}
	for i := range enrollments {
		if m, ok := byID[enrollments[i].ModuleID]; ok {
			module := m
			enrollments[i].Module = &module
		}
	}
	return enrollments, nil
}

// ExistsByCPF reports whether another student already uses the CPF.
func (r *StudentRepository) ExistsByCPF(ctx context.Context, cpf string, excludeID int64) (bool, error) {
	query := `SELECT 1 FROM students WHERE cpf = $1`
	args := []interface{}{cpf}
	if excludeID > 0 {
		query += ` AND id <> $2`
		args = append(args, excludeID)
	}
	query += ` LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check student cpf: %w", err)
	}
	return true, nil
}

// Create inserts a student and its initial enrollments in one transaction.
func (r *StudentRepository) Create(ctx context.Context, input models.StudentInput) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin student create: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	var studentID int64
	const insertStudent = `INSERT INTO students (name, cpf, email, phone, age, wears_glasses, handedness, course_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	if err := tx.GetContext(ctx, &studentID, insertStudent, input.Name, input.CPF, input.Email, input.Phone, input.Age, input.WearsGlasses, input.Handedness, input.CourseID, now, now); err != nil {
		return 0, fmt.Errorf("insert student: %w", err)
	}

	if err := insertEnrollments(ctx, tx, studentID, input.Modules, now); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit student create: %w", err)
	}
	return studentID, nil
}

// Update replaces the student row and, when modules are supplied, recreates
// its enrollment set wholesale.
func (r *StudentRepository) Update(ctx context.Context, id int64, input models.StudentInput) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin student update: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	const updateStudent = `UPDATE students SET name = $2, cpf = $3, email = $4, phone = $5, age = $6, wears_glasses = $7, handedness = $8, course_id = $9, updated_at = $10 WHERE id = $1`
	res, err := tx.ExecContext(ctx, updateStudent, id, input.Name, input.CPF, input.Email, input.Phone, input.Age, input.WearsGlasses, input.Handedness, input.CourseID, now)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}

	if len(input.Modules) > 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM enrollments WHERE student_id = $1`, id); err != nil {
			return fmt.Errorf("clear student enrollments: %w", err)
		}
		if err := insertEnrollments(ctx, tx, id, input.Modules, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit student update: %w", err)
	}
	return nil
}

// Delete removes a student with its attendance and enrollment rows,
// children before parent.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin student delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM attendances WHERE student_id = $1`, id); err != nil {
		return fmt.Errorf("delete student attendances: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM enrollments WHERE student_id = $1`, id); err != nil {
		return fmt.Errorf("delete student enrollments: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit student delete: %w", err)
	}
	return nil
}

// insertEnrollments inserts enrollment rows with the default pending status.
func insertEnrollments(ctx context.Context, tx *sqlx.Tx, studentID int64, modules []models.EnrollmentInput, now time.Time) error {
	const insertEnrollment = `INSERT INTO enrollments (student_id, module_id, status, start_date, end_date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, m := range modules {
		if _, err := tx.ExecContext(ctx, insertEnrollment, studentID, m.ModuleID, models.EnrollmentPending, m.StartDate, m.EndDate, now, now); err != nil {
			return fmt.Errorf("insert enrollment: %w", err)
		}
	}
	return nil
}
