package models

import "time"

// Handedness indicates which hand the student favors.
type Handedness string

const (
	HandednessRight Handedness = "DESTRO"
	HandednessLeft  Handedness = "CANHOTO"
)

// Student represents a learner registered in the academy.
type Student struct {
	ID          int64      `db:"id" json:"id"`
	Name        string     `db:"name" json:"nome"`
	CPF         string     `db:"cpf" json:"cpf"`
	Email       string     `db:"email" json:"email"`
	Phone       *string    `db:"phone" json:"telefone,omitempty"`
	Age         int        `db:"age" json:"idade"`
	WearsGlasses bool      `db:"wears_glasses" json:"usaOculos"`
	Handedness  Handedness `db:"handedness" json:"destroCanhoto"`
	CourseID    int64      `db:"course_id" json:"cursoId"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`

	Course      *Course      `db:"-" json:"curso,omitempty"`
	Enrollments []Enrollment `db:"-" json:"alunoModulos,omitempty"`
}

// StudentInput is the payload for creating or updating a student.
type StudentInput struct {
	Name         string            `json:"nome" validate:"required,min=2"`
	CPF          string            `json:"cpf" validate:"required"`
	Email        string            `json:"email" validate:"required,email"`
	Phone        *string           `json:"telefone"`
	Age          int               `json:"idade" validate:"gte=0"`
	WearsGlasses bool              `json:"usaOculos"`
	Handedness   Handedness        `json:"destroCanhoto" validate:"required,oneof=DESTRO CANHOTO"`
	CourseID     int64             `json:"cursoId" validate:"required,gt=0"`
	Modules      []EnrollmentInput `json:"modulos" validate:"omitempty,dive"`
}

// StudentFilter captures pagination for student listings.
type StudentFilter struct {
	Page     int
	PageSize int
}
