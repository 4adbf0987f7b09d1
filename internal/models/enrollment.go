package models

import "time"

// EnrollmentStatus tracks a student's progress through a module.
type EnrollmentStatus string

const (
	EnrollmentPending    EnrollmentStatus = "PENDENTE"
	EnrollmentInProgress EnrollmentStatus = "EM_ANDAMENTO"
	EnrollmentCompleted  EnrollmentStatus = "CONCLUIDO"
)

// ValidEnrollmentStatus reports whether s is a recognized progress status.
func ValidEnrollmentStatus(s EnrollmentStatus) bool {
	switch s {
	case EnrollmentPending, EnrollmentInProgress, EnrollmentCompleted:
		return true
	}
	return false
}

// Enrollment links a student to a module with progress status and dates.
// At most one row exists per (student, module) pair.
type Enrollment struct {
	ID        int64            `db:"id" json:"id"`
	StudentID int64            `db:"student_id" json:"alunoId"`
	ModuleID  int64            `db:"module_id" json:"moduloId"`
	Status    EnrollmentStatus `db:"status" json:"status"`
	StartDate *time.Time       `db:"start_date" json:"dataInicio,omitempty"`
	EndDate   *time.Time       `db:"end_date" json:"dataTermino,omitempty"`
	CreatedAt time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time        `db:"updated_at" json:"updatedAt"`

	Module  *Module  `db:"-" json:"modulo,omitempty"`
	Student *Student `db:"-" json:"aluno,omitempty"`
}

// EnrollmentInput is the nested enrollment payload inside a student write.
type EnrollmentInput struct {
	ModuleID  int64      `json:"moduloId" validate:"required,gt=0"`
	StartDate *time.Time `json:"dataInicio"`
	EndDate   *time.Time `json:"dataTermino"`
}

// EnrollmentUpsert carries the mutable fields of a progress upsert.
type EnrollmentUpsert struct {
	StudentID int64
	ModuleID  int64
	Status    EnrollmentStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// ProgressItem is one entry of a bulk progress update.
type ProgressItem struct {
	ModuleID  int64            `json:"moduloId" validate:"required,gt=0"`
	Status    EnrollmentStatus `json:"status" validate:"required,oneof=PENDENTE EM_ANDAMENTO CONCLUIDO"`
	StartDate *time.Time       `json:"dataInicio"`
	EndDate   *time.Time       `json:"dataTermino"`
}

// ProgressRequest is the payload of a bulk progress update.
type ProgressRequest struct {
	Modules []ProgressItem `json:"modulosStatus" validate:"required,min=1,dive"`
}

// ProgressFailure reports a single failed item of a bulk update.
type ProgressFailure struct {
	ModuleID int64  `json:"moduloId"`
	Error    string `json:"error"`
}

// EnableModuleRequest toggles a module's enrollment status for a student.
type EnableModuleRequest struct {
	StudentID int64            `json:"alunoId" validate:"required,gt=0"`
	Status    EnrollmentStatus `json:"status" validate:"required,oneof=PENDENTE EM_ANDAMENTO CONCLUIDO"`
}

// CompleteModuleRequest records a module completion date for a student.
type CompleteModuleRequest struct {
	StudentID int64      `json:"alunoId" validate:"required,gt=0"`
	EndDate   *time.Time `json:"dataTermino"`
}
