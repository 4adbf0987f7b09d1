package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/academia-dev/academia-api/internal/models"
	appErrors "github.com/academia-dev/academia-api/pkg/errors"
)

type cellRepository interface {
	List(ctx context.Context) ([]models.Cell, error)
	ListByModule(ctx context.Context, moduleID int64) ([]models.Cell, error)
	FindByID(ctx context.Context, id int64) (*models.Cell, error)
	Update(ctx context.Context, id int64, input models.CellInput) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type attendanceRepository interface {
	Upsert(ctx context.Context, up models.AttendanceUpsert) (*models.Attendance, error)
	ListByCell(ctx context.Context, cellID int64) ([]models.Attendance, error)
}

// CellService exposes cell reads and attendance registration.
type CellService struct {
	cells       cellRepository
	attendances attendanceRepository
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewCellService constructs a CellService instance.
func NewCellService(cells cellRepository, attendances attendanceRepository, validate *validator.Validate, logger *zap.Logger) *CellService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CellService{cells: cells, attendances: attendances, validator: validate, logger: logger}
}

// List returns all cells.
func (s *CellService) List(ctx context.Context) ([]models.Cell, error) {
	cells, err := s.cells.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return cells, nil
}

// ListByModule returns the cells of a module.
func (s *CellService) ListByModule(ctx context.Context, moduleID int64) ([]models.Cell, error) {
	cells, err := s.cells.ListByModule(ctx, moduleID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return cells, nil
}

// Get returns a cell by ID.
func (s *CellService) Get(ctx context.Context, id int64) (*models.Cell, error) {
	cell, err := s.cells.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Célula não encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return cell, nil
}

// Update rewrites a cell's fields and returns the stored row.
func (s *CellService) Update(ctx context.Context, id int64, input models.CellInput) (*models.Cell, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Dados inválidos")
	}

	if err := s.cells.Update(ctx, id, input); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Célula não encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return s.Get(ctx, id)
}

// ListAttendances returns attendance rows for a cell with students attached.
func (s *CellService) ListAttendances(ctx context.Context, cellID int64) ([]models.Attendance, error) {
	exists, err := s.cells.Exists(ctx, cellID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Célula não encontrada")
	}

	attendances, err := s.attendances.ListByCell(ctx, cellID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return attendances, nil
}

// RegisterAttendance upserts the attendance for (student, cell). The record
// date is stamped with the current time on every write.
func (s *CellService) RegisterAttendance(ctx context.Context, cellID int64, input models.AttendanceInput) (*models.Attendance, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Dados inválidos")
	}

	exists, err := s.cells.Exists(ctx, cellID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Célula não encontrada")
	}

	attendance, err := s.attendances.Upsert(ctx, models.AttendanceUpsert{
		StudentID: input.StudentID,
		CellID:    cellID,
		Present:   input.Present,
		HoursDone: input.HoursDone,
		Date:      time.Now().UTC(),
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return attendance, nil
}
