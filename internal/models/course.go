package models

import "time"

// Course represents a training course and owns a set of modules.
type Course struct {
	ID                int64     `db:"id" json:"id"`
	Name              string    `db:"name" json:"nome"`
	Description       *string   `db:"description" json:"descricao,omitempty"`
	TotalHours        int       `db:"total_hours" json:"cargaHorariaTotal"`
	Prerequisites     *string   `db:"prerequisites" json:"preRequisitos,omitempty"`
	RequiredMaterials *string   `db:"required_materials" json:"materialNecessario,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `db:"updated_at" json:"updatedAt"`

	Modules []Module `db:"-" json:"modulos,omitempty"`
}

// Module represents a course module and owns a set of cells.
type Module struct {
	ID          int64     `db:"id" json:"id"`
	CourseID    int64     `db:"course_id" json:"cursoId"`
	Name        string    `db:"name" json:"nome"`
	Description *string   `db:"description" json:"descricao,omitempty"`
	Hours       int       `db:"hours" json:"cargaHoraria"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`

	Cells []Cell `db:"-" json:"celulas,omitempty"`
}

// Cell is the smallest schedulable curriculum unit within a module.
type Cell struct {
	ID            int64     `db:"id" json:"id"`
	ModuleID      int64     `db:"module_id" json:"moduloId"`
	Name          string    `db:"name" json:"nome"`
	Description   *string   `db:"description" json:"descricao,omitempty"`
	Hours         int       `db:"hours" json:"cargaHoraria"`
	TechnicalCode *string   `db:"technical_code" json:"siglaTecnica,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// CourseInput is the payload for creating or replacing a course graph.
// Nested modules and cells are recreated wholesale on update.
type CourseInput struct {
	Name              string        `json:"nome" validate:"required,min=2"`
	Description       *string       `json:"descricao"`
	TotalHours        int           `json:"cargaHorariaTotal" validate:"gte=0"`
	Prerequisites     *string       `json:"preRequisitos"`
	RequiredMaterials *string       `json:"materialNecessario"`
	Modules           []ModuleInput `json:"modulos" validate:"omitempty,dive"`
}

// ModuleInput is the nested module payload inside a course write.
type ModuleInput struct {
	Name        string      `json:"nome" validate:"required,min=2"`
	Description *string     `json:"descricao"`
	Hours       int         `json:"cargaHoraria" validate:"gte=0"`
	Cells       []CellInput `json:"celulas" validate:"omitempty,dive"`
}

// CellInput is the nested cell payload inside a module write.
type CellInput struct {
	Name          string  `json:"nome" validate:"required"`
	Description   *string `json:"descricao"`
	Hours         int     `json:"cargaHoraria" validate:"gte=0"`
	TechnicalCode *string `json:"siglaTecnica"`
}

// CourseFilter captures pagination for course listings.
type CourseFilter struct {
	Page     int
	PageSize int
}
