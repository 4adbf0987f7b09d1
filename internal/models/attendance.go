package models

import "time"

// Attendance records a student's presence in a cell.
// At most one row exists per (student, cell) pair.
type Attendance struct {
	ID        int64     `db:"id" json:"id"`
	StudentID int64     `db:"student_id" json:"alunoId"`
	CellID    int64     `db:"cell_id" json:"celulaId"`
	Present   *bool     `db:"present" json:"presente"`
	HoursDone float64   `db:"hours_done" json:"horasFeitas"`
	Date      time.Time `db:"date" json:"data"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	Student *Student `db:"-" json:"aluno,omitempty"`
}

// AttendanceInput is the payload for registering presence in a cell.
type AttendanceInput struct {
	StudentID int64   `json:"alunoId" validate:"required,gt=0"`
	Present   *bool   `json:"presente"`
	HoursDone float64 `json:"horasFeitas" validate:"gte=0"`
}

// AttendanceUpsert carries the mutable fields of an attendance upsert.
type AttendanceUpsert struct {
	StudentID int64
	CellID    int64
	Present   *bool
	HoursDone float64
	Date      time.Time
}
