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

type moduleRepository interface {
	List(ctx context.Context) ([]models.Module, error)
	FindByID(ctx context.Context, id int64) (*models.Module, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type enrollmentRepository interface {
	Upsert(ctx context.Context, up models.EnrollmentUpsert) (*models.Enrollment, error)
	UpsertStatus(ctx context.Context, studentID, moduleID int64, status models.EnrollmentStatus) (*models.Enrollment, error)
	FindByStudentAndModule(ctx context.Context, studentID, moduleID int64) (*models.Enrollment, error)
	UpdateCompletion(ctx context.Context, studentID, moduleID int64, endDate *time.Time) (*models.Enrollment, error)
}

// ModuleService exposes module reads and per-student enrollment operations.
type ModuleService struct {
	modules     moduleRepository
	enrollments enrollmentRepository
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewModuleService constructs a ModuleService instance.
func NewModuleService(modules moduleRepository, enrollments enrollmentRepository, validate *validator.Validate, logger *zap.Logger) *ModuleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ModuleService{modules: modules, enrollments: enrollments, validator: validate, logger: logger}
}

// List returns all modules with their cells.
func (s *ModuleService) List(ctx context.Context) ([]models.Module, error) {
	modules, err := s.modules.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return modules, nil
}

// Get returns a module with its cells.
func (s *ModuleService) Get(ctx context.Context, id int64) (*models.Module, error) {
	module, err := s.modules.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Módulo não encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return module, nil
}

// Enable sets the enrollment status for a student on a module, creating the
// enrollment when it does not exist. Replays converge to the same row.
func (s *ModuleService) Enable(ctx context.Context, moduleID int64, req models.EnableModuleRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Dados inválidos")
	}

	exists, err := s.modules.Exists(ctx, moduleID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Módulo não encontrado")
	}

	enrollment, err := s.enrollments.UpsertStatus(ctx, req.StudentID, moduleID, req.Status)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return enrollment, nil
}

// Complete records a module completion date for a student. A date moves the
// enrollment to completed, clearing it moves it back to pending. Unlike
// Enable, the enrollment must already exist.
func (s *ModuleService) Complete(ctx context.Context, moduleID int64, req models.CompleteModuleRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Dados inválidos")
	}

	enrollment, err := s.enrollments.UpdateCompletion(ctx, req.StudentID, moduleID, req.EndDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Matrícula não encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return enrollment, nil
}
