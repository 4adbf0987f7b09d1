package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/academia-dev/academia-api/internal/models"
	appErrors "github.com/academia-dev/academia-api/pkg/errors"
)

type mockCourseRepo struct {
	courses     map[int64]*models.Course
	nextID      int64
	nextChildID int64
	listCalls   int
	findCalls   int
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[int64]*models.Course), nextID: 1, nextChildID: 100}
}

// childID mimics sequence-backed IDs: recreated children never reuse one.
func (m *mockCourseRepo) childID() int64 {
	id := m.nextChildID
	m.nextChildID++
	return id
}

func (m *mockCourseRepo) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	m.listCalls++
	out := make([]models.Course, 0, len(m.courses))
	for _, c := range m.courses {
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (m *mockCourseRepo) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	m.findCalls++
	c, ok := m.courses[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return c, nil
}

func (m *mockCourseRepo) Create(ctx context.Context, input models.CourseInput) (int64, error) {
	id := m.nextID
	m.nextID++
	course := &models.Course{ID: id, Name: input.Name, TotalHours: input.TotalHours}
	for _, mod := range input.Modules {
		module := models.Module{ID: m.childID(), CourseID: id, Name: mod.Name, Hours: mod.Hours}
		for _, cell := range mod.Cells {
			module.Cells = append(module.Cells, models.Cell{ID: m.childID(), ModuleID: module.ID, Name: cell.Name, Hours: cell.Hours})
		}
		course.Modules = append(course.Modules, module)
	}
	m.courses[id] = course
	return id, nil
}

func (m *mockCourseRepo) Update(ctx context.Context, id int64, input models.CourseInput) error {
	if _, ok := m.courses[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.courses, id)
	saved := m.nextID
	m.nextID = id
	_, err := m.Create(ctx, input)
	m.nextID = saved
	return err
}

func (m *mockCourseRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.courses[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.courses, id)
	return nil
}

// memoryCache is an in-process stand-in for the Redis-backed repository.
type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := c.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

func courseInputWithModules() models.CourseInput {
	return models.CourseInput{
		Name:       "Solda Básica",
		TotalHours: 60,
		Modules: []models.ModuleInput{
			{Name: "Fundamentos", Hours: 20, Cells: []models.CellInput{
				{Name: "Soldagem 1F", Hours: 4},
				{Name: "Soldagem 2F", Hours: 4},
				{Name: "Soldagem 3F", Hours: 4},
			}},
			{Name: "Técnicas Básicas", Hours: 20, Cells: []models.CellInput{
				{Name: "Soldagem 1G", Hours: 4},
				{Name: "Soldagem 2G", Hours: 4},
				{Name: "Soldagem 3G", Hours: 4},
			}},
		},
	}
}

func TestCourseServiceCreateReturnsFullHierarchy(t *testing.T) {
	repo := newMockCourseRepo()
	svc := NewCourseService(repo, nil, nil, nil)

	course, err := svc.Create(context.Background(), courseInputWithModules())
	require.NoError(t, err)
	require.Len(t, course.Modules, 2)
	assert.Len(t, course.Modules[0].Cells, 3)
	assert.Len(t, course.Modules[1].Cells, 3)
}

func TestCourseServiceUpdateReplacesHierarchy(t *testing.T) {
	repo := newMockCourseRepo()
	svc := NewCourseService(repo, nil, nil, nil)

	created, err := svc.Create(context.Background(), courseInputWithModules())
	require.NoError(t, err)
	oldModuleID := created.Modules[0].ID

	replacement := models.CourseInput{
		Name:       "Solda Básica",
		TotalHours: 40,
		Modules: []models.ModuleInput{
			{Name: "Único", Hours: 40, Cells: []models.CellInput{{Name: "Soldagem 4G", Hours: 8}}},
		},
	}
	updated, err := svc.Update(context.Background(), created.ID, replacement)
	require.NoError(t, err)
	require.Len(t, updated.Modules, 1)
	assert.Len(t, updated.Modules[0].Cells, 1)
	assert.NotEqual(t, oldModuleID, updated.Modules[0].ID)
}

func TestCourseServiceGetUsesCache(t *testing.T) {
	repo := newMockCourseRepo()
	cache := NewCacheService(newMemoryCache(), nil, time.Minute, nil, true)
	svc := NewCourseService(repo, cache, nil, nil)

	created, err := svc.Create(context.Background(), courseInputWithModules())
	require.NoError(t, err)

	first, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	callsAfterFirst := repo.findCalls

	second, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, callsAfterFirst, repo.findCalls, "second read should come from cache")
}

func TestCourseServiceWriteInvalidatesCache(t *testing.T) {
	repo := newMockCourseRepo()
	cache := NewCacheService(newMemoryCache(), nil, time.Minute, nil, true)
	svc := NewCourseService(repo, cache, nil, nil)

	created, err := svc.Create(context.Background(), courseInputWithModules())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), created.ID)
	require.NoError(t, err)

	replacement := courseInputWithModules()
	replacement.Name = "Solda Avançada"
	_, err = svc.Update(context.Background(), created.ID, replacement)
	require.NoError(t, err)

	fresh, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Solda Avançada", fresh.Name)
}

func TestCourseServiceGetMissing(t *testing.T) {
	repo := newMockCourseRepo()
	svc := NewCourseService(repo, nil, nil, nil)

	_, err := svc.Get(context.Background(), 404)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "Curso não encontrado", appErr.Message)
}

func TestCourseServiceDeleteMissing(t *testing.T) {
	repo := newMockCourseRepo()
	svc := NewCourseService(repo, nil, nil, nil)

	err := svc.Delete(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
