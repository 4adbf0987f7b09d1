package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/academia-dev/academia-api/internal/models"
)

// EnrollmentRepository handles persistence of student↔module enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Upsert creates or updates the enrollment keyed by (student_id, module_id)
// and returns the resulting row. Replaying the same payload converges to the
// same final state.
func (r *EnrollmentRepository) Upsert(ctx context.Context, up models.EnrollmentUpsert) (*models.Enrollment, error) {
	now := time.Now().UTC()
	status := up.Status
	if status == "" {
		status = models.EnrollmentPending
	}
	const query = `INSERT INTO enrollments (student_id, module_id, status, start_date, end_date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
ON CONFLICT (student_id, module_id) DO UPDATE
SET status = EXCLUDED.status, start_date = EXCLUDED.start_date, end_date = EXCLUDED.end_date, updated_at = EXCLUDED.updated_at
RETURNING ` + enrollmentColumns
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, up.StudentID, up.ModuleID, status, up.StartDate, up.EndDate, now); err != nil {
		return nil, fmt.Errorf("upsert enrollment: %w", err)
	}
	return &enrollment, nil
}

// UpsertStatus creates or updates only the status of the enrollment keyed by
// (student_id, module_id), preserving existing dates on update.
func (r *EnrollmentRepository) UpsertStatus(ctx context.Context, studentID, moduleID int64, status models.EnrollmentStatus) (*models.Enrollment, error) {
	now := time.Now().UTC()
	const query = `INSERT INTO enrollments (student_id, module_id, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $4)
ON CONFLICT (student_id, module_id) DO UPDATE
SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at
RETURNING ` + enrollmentColumns
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, studentID, moduleID, status, now); err != nil {
		return nil, fmt.Errorf("upsert enrollment status: %w", err)
	}
	return &enrollment, nil
}

// FindByStudentAndModule returns the enrollment for the composite key.
func (r *EnrollmentRepository) FindByStudentAndModule(ctx context.Context, studentID, moduleID int64) (*models.Enrollment, error) {
	query := fmt.Sprintf(`SELECT %s FROM enrollments WHERE student_id = $1 AND module_id = $2 LIMIT 1`, enrollmentColumns)
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, studentID, moduleID); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// UpdateCompletion records the end date for the composite key, moving status
// to completed when a date is given and back to pending when cleared.
func (r *EnrollmentRepository) UpdateCompletion(ctx context.Context, studentID, moduleID int64, endDate *time.Time) (*models.Enrollment, error) {
	status := models.EnrollmentPending
	if endDate != nil {
		status = models.EnrollmentCompleted
	}
	const query = `UPDATE enrollments SET status = $3, end_date = $4, updated_at = $5
WHERE student_id = $1 AND module_id = $2
RETURNING ` + enrollmentColumns
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, studentID, moduleID, status, endDate, time.Now().UTC()); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// EnrollmentRecord is a denormalized enrollment row used for report exports.
type EnrollmentRecord struct {
	StudentName string     `db:"student_name"`
	StudentCPF  string     `db:"student_cpf"`
	ModuleName  string     `db:"module_name"`
	Status      string     `db:"status"`
	StartDate   *time.Time `db:"start_date"`
	EndDate     *time.Time `db:"end_date"`
}

// ListByCourse returns enrollment rows for every module of a course,
// optionally narrowed to one student, joined with student and module names.
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID int64, studentID *int64) ([]EnrollmentRecord, error) {
	query := `SELECT s.name AS student_name, s.cpf AS student_cpf, m.name AS module_name, e.status, e.start_date, e.end_date
FROM enrollments e
JOIN students s ON s.id = e.student_id
JOIN modules m ON m.id = e.module_id
WHERE m.course_id = $1`
	args := []interface{}{courseID}
	if studentID != nil {
		query += ` AND e.student_id = $2`
		args = append(args, *studentID)
	}
	query += ` ORDER BY s.name, m.id`

	var records []EnrollmentRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list course enrollments: %w", err)
	}
	return records, nil
}

// ListByModule returns enrollments of a module.
func (r *EnrollmentRepository) ListByModule(ctx context.Context, moduleID int64) ([]models.Enrollment, error) {
	query := fmt.Sprintf(`SELECT %s FROM enrollments WHERE module_id = $1 ORDER BY student_id`, enrollmentColumns)
	var enrollments []models.Enrollment
	if err := r.db.SelectContext(ctx, &enrollments, query, moduleID); err != nil {
		return nil, fmt.Errorf("list module enrollments: %w", err)
	}
	return enrollments, nil
}
