package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/academia-dev/academia-api/internal/models"
	appErrors "github.com/academia-dev/academia-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error)
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, input models.CourseInput) (int64, error)
	Update(ctx context.Context, id int64, input models.CourseInput) error
	Delete(ctx context.Context, id int64) error
}

const (
	courseCachePattern = "courses:*"
	courseListKeyFmt   = "courses:list:p%d:s%d"
	courseItemKeyFmt   = "courses:id:%d"
)

// CourseService manages the course→module→cell hierarchy.
type CourseService struct {
	repo      courseRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs a CourseService instance.
func NewCourseService(repo courseRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CourseService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns courses with nested modules and cells plus pagination metadata.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	type cachedList struct {
		Courses []models.Course   `json:"courses"`
		Meta    models.Pagination `json:"meta"`
	}
	key := fmt.Sprintf(courseListKeyFmt, filter.Page, filter.PageSize)
	var cached cachedList
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached.Courses, &cached.Meta, nil
	}

	courses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	meta := models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}

	_ = s.cache.Set(ctx, key, cachedList{Courses: courses, Meta: meta}, 0)
	return courses, &meta, nil
}

// Get returns a single course with its full hierarchy.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	key := fmt.Sprintf(courseItemKeyFmt, id)
	var cached models.Course
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Curso não encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	_ = s.cache.Set(ctx, key, course, 0)
	return course, nil
}

// Create persists a new course graph and returns the stored hierarchy.
func (s *CourseService) Create(ctx context.Context, input models.CourseInput) (*models.Course, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Dados inválidos")
	}

	id, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	_ = s.cache.Invalidate(ctx, courseCachePattern)

	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	s.logger.Info("course created", zap.Int64("course_id", id), zap.Int("modules", len(course.Modules)))
	return course, nil
}

// Update replaces the course and recreates its module/cell tree. Old child
// IDs are gone after this call.
func (s *CourseService) Update(ctx context.Context, id int64, input models.CourseInput) (*models.Course, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Dados inválidos")
	}

	if err := s.repo.Update(ctx, id, input); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Curso não encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	_ = s.cache.Invalidate(ctx, courseCachePattern)

	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return course, nil
}

// Delete removes the course and every dependent row.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Curso não encontrado")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	_ = s.cache.Invalidate(ctx, courseCachePattern)
	s.logger.Info("course deleted", zap.Int64("course_id", id))
	return nil
}
