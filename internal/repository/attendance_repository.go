package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/academia-dev/academia-api/internal/models"
)

// AttendanceRepository handles persistence of student↔cell attendance rows.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

const attendanceColumns = `id, student_id, cell_id, present, hours_done, date, created_at, updated_at`

// Upsert creates or updates the attendance keyed by (student_id, cell_id)
// and returns the resulting row.
func (r *AttendanceRepository) Upsert(ctx context.Context, up models.AttendanceUpsert) (*models.Attendance, error) {
	now := time.Now().UTC()
	date := up.Date
	if date.IsZero() {
		date = now
	}
	const query = `INSERT INTO attendances (student_id, cell_id, present, hours_done, date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
ON CONFLICT (student_id, cell_id) DO UPDATE
SET present = EXCLUDED.present, hours_done = EXCLUDED.hours_done, date = EXCLUDED.date, updated_at = EXCLUDED.updated_at
RETURNING ` + attendanceColumns
	var attendance models.Attendance
	if err := r.db.GetContext(ctx, &attendance, query, up.StudentID, up.CellID, up.Present, up.HoursDone, date, now); err != nil {
		return nil, fmt.Errorf("upsert attendance: %w", err)
	}
	return &attendance, nil
}

// ListByCell returns the attendance rows of a cell with students attached.
func (r *AttendanceRepository) ListByCell(ctx context.Context, cellID int64) ([]models.Attendance, error) {
	query := fmt.Sprintf(`SELECT %s FROM attendances WHERE cell_id = $1 ORDER BY student_id`, attendanceColumns)
	var attendances []models.Attendance
	if err := r.db.SelectContext(ctx, &attendances, query, cellID); err != nil {
		return nil, fmt.Errorf("list cell attendances: %w", err)
	}
	if err := r.attachStudents(ctx, attendances); err != nil {
		return nil, err
	}
	return attendances, nil
}

// AttendanceRecord is a denormalized attendance row used for report exports.
type AttendanceRecord struct {
	StudentName string    `db:"student_name"`
	StudentCPF  string    `db:"student_cpf"`
	ModuleName  string    `db:"module_name"`
	CellName    string    `db:"cell_name"`
	Present     *bool     `db:"present"`
	HoursDone   float64   `db:"hours_done"`
	Date        time.Time `db:"date"`
}

// ListByCourse returns attendance rows for every cell of a course, optionally
// narrowed to one student, joined with student and curriculum names.
func (r *AttendanceRepository) ListByCourse(ctx context.Context, courseID int64, studentID *int64) ([]AttendanceRecord, error) {
	query := `SELECT s.name AS student_name, s.cpf AS student_cpf, m.name AS module_name, c.name AS cell_name,
a.present, a.hours_done, a.date
FROM attendances a
JOIN students s ON s.id = a.student_id
JOIN cells c ON c.id = a.cell_id
JOIN modules m ON m.id = c.module_id
WHERE m.course_id = $1`
	args := []interface{}{courseID}
	if studentID != nil {
		query += ` AND a.student_id = $2`
		args = append(args, *studentID)
	}
	query += ` ORDER BY s.name, m.id, c.id`

	var records []AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list course attendances: %w", err)
	}
	return records, nil
}

func (r *AttendanceRepository) attachStudents(ctx context.Context, attendances []models.Attendance) error {
	if len(attendances) == 0 {
		return nil
	}
	studentIDs := make([]int64, len(attendances))
	for i, a := range attendances {
		studentIDs[i] = a.StudentID
	}
	query, args, err := sqlx.In(fmt.Sprintf(`SELECT %s FROM students WHERE id IN (?)`, studentColumns), studentIDs)
	if err != nil {
		return fmt.Errorf("build student query: %w", err)
	}
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("load attendance students: %w", err)
	}
	byID := make(map[int64]models.Student, len(students))
	for _, s := range students {
		byID[s.ID] = s
	}
	for i := range attendances {
		if s, ok := byID[attendances[i].StudentID]; ok {
			student := s
			attendances[i].Student = &student
		}
	}
	return nil
}
