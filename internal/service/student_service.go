package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/academia-dev/academia-api/internal/models"
	appErrors "github.com/academia-dev/academia-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	ListEnrollments(ctx context.Context, studentID int64) ([]models.Enrollment, error)
	ExistsByCPF(ctx context.Context, cpf string, excludeID int64) (bool, error)
	Create(ctx context.Context, input models.StudentInput) (int64, error)
	Update(ctx context.Context, id int64, input models.StudentInput) error
	Delete(ctx context.Context, id int64) error
}

type courseFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Course, error)
}

// progressConcurrency bounds parallel upserts during bulk progress updates.
const progressConcurrency = 4

// StudentService manages students, their course link and their enrollments.
type StudentService struct {
	students    studentRepository
	courses     courseFinder
	enrollments enrollmentRepository
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewStudentService constructs a StudentService instance.
func NewStudentService(students studentRepository, courses courseFinder, enrollments enrollmentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &StudentService{students: students, courses: courses, enrollments: enrollments, validator: validate, logger: logger}
}

// List returns students with pagination metadata.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	students, total, err := s.students.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	meta := models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return students, &meta, nil
}

// Get returns a student with course and enrollments attached.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Aluno não encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	course, err := s.courses.FindByID(ctx, student.CourseID)
	if err == nil {
		student.Course = course
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	enrollments, err := s.students.ListEnrollments(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	student.Enrollments = enrollments
	return student, nil
}

// Create persists a student with its initial enrollments, verifying the
// course exists and the CPF is unused.
func (s *StudentService) Create(ctx context.Context, input models.StudentInput) (*models.Student, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Dados inválidos")
	}

	if _, err := s.courses.FindByID(ctx, input.CourseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Curso não encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	taken, err := s.students.ExistsByCPF(ctx, input.CPF, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, "CPF já cadastrado")
	}

	id, err := s.students.Create(ctx, input)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	s.logger.Info("student created", zap.Int64("student_id", id), zap.Int64("course_id", input.CourseID))
	return s.Get(ctx, id)
}

// Update replaces the student and, when modules are supplied, recreates its
// enrollment set.
func (s *StudentService) Update(ctx context.Context, id int64, input models.StudentInput) (*models.Student, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Dados inválidos")
	}

	if _, err := s.courses.FindByID(ctx, input.CourseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Curso não encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	taken, err := s.students.ExistsByCPF(ctx, input.CPF, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, "CPF já cadastrado")
	}

	if err := s.students.Update(ctx, id, input); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Aluno não encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return s.Get(ctx, id)
}

// Delete removes a student and its attendance and enrollment rows.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.students.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Aluno não encontrado")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	s.logger.Info("student deleted", zap.Int64("student_id", id))
	return nil
}

// BulkProgress applies one enrollment upsert per item with bounded
// concurrency. Items fail independently: a partial failure leaves the other
// rows updated and is reported per module, with no batch rollback.
func (s *StudentService) BulkProgress(ctx context.Context, studentID int64, req models.ProgressRequest) (*models.Student, []models.ProgressFailure, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Dados inválidos")
	}

	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "Aluno não encontrado")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	var (
		mu       sync.Mutex
		failures []models.ProgressFailure
		wg       sync.WaitGroup
		sem      = make(chan struct{}, progressConcurrency)
	)
	for _, item := range req.Modules {
		item := item
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			_, err := s.enrollments.Upsert(ctx, models.EnrollmentUpsert{
				StudentID: studentID,
				ModuleID:  item.ModuleID,
				Status:    item.Status,
				StartDate: item.StartDate,
				EndDate:   item.EndDate,
			})
			if err != nil {
				mu.Lock()
				failures = append(failures, models.ProgressFailure{ModuleID: item.ModuleID, Error: err.Error()})
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	sort.Slice(failures, func(i, j int) bool { return failures[i].ModuleID < failures[j].ModuleID })
	if len(failures) > 0 {
		s.logger.Warn("bulk progress partially failed",
			zap.Int64("student_id", studentID),
			zap.Int("failed", len(failures)),
			zap.Int("total", len(req.Modules)))
	}

	student, err := s.Get(ctx, studentID)
	if err != nil {
		return nil, failures, err
	}
	return student, failures, nil
}
