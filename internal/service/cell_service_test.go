package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/academia-dev/academia-api/internal/models"
	appErrors "github.com/academia-dev/academia-api/pkg/errors"
)

type mockCellRepo struct {
	cells map[int64]*models.Cell
}

func newMockCellRepo(cells ...*models.Cell) *mockCellRepo {
	repo := &mockCellRepo{cells: make(map[int64]*models.Cell)}
	for _, cell := range cells {
		repo.cells[cell.ID] = cell
	}
	return repo
}

func (m *mockCellRepo) List(_ context.Context) ([]models.Cell, error) {
	out := make([]models.Cell, 0, len(m.cells))
	for _, cell := range m.cells {
		out = append(out, *cell)
	}
	return out, nil
}

func (m *mockCellRepo) ListByModule(_ context.Context, moduleID int64) ([]models.Cell, error) {
	var out []models.Cell
	for _, cell := range m.cells {
		if cell.ModuleID == moduleID {
			out = append(out, *cell)
		}
	}
	return out, nil
}

func (m *mockCellRepo) FindByID(_ context.Context, id int64) (*models.Cell, error) {
	cell, ok := m.cells[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *cell
	return &copied, nil
}

func (m *mockCellRepo) Update(_ context.Context, id int64, input models.CellInput) error {
	cell, ok := m.cells[id]
	if !ok {
		return sql.ErrNoRows
	}
	cell.Name = input.Name
	cell.Description = input.Description
	cell.Hours = input.Hours
	cell.TechnicalCode = input.TechnicalCode
	return nil
}

func (m *mockCellRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := m.cells[id]
	return ok, nil
}

type mockAttendanceRepo struct {
	rows   map[[2]int64]*models.Attendance
	nextID int64
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{rows: make(map[[2]int64]*models.Attendance)}
}

func (m *mockAttendanceRepo) Upsert(_ context.Context, up models.AttendanceUpsert) (*models.Attendance, error) {
	key := [2]int64{up.StudentID, up.CellID}
	row, ok := m.rows[key]
	if !ok {
		m.nextID++
		row = &models.Attendance{ID: m.nextID, StudentID: up.StudentID, CellID: up.CellID}
		m.rows[key] = row
	}
	row.Present = up.Present
	row.HoursDone = up.HoursDone
	row.Date = up.Date
	copied := *row
	return &copied, nil
}

func (m *mockAttendanceRepo) ListByCell(_ context.Context, cellID int64) ([]models.Attendance, error) {
	var out []models.Attendance
	for _, row := range m.rows {
		if row.CellID == cellID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func weldingCell() *models.Cell {
	code := "1F"
	return &models.Cell{ID: 1, ModuleID: 10, Name: "Soldagem 1F", Hours: 8, TechnicalCode: &code}
}

func TestCellServiceUpdatePersistsFields(t *testing.T) {
	repo := newMockCellRepo(weldingCell())
	svc := NewCellService(repo, newMockAttendanceRepo(), nil, nil)

	code := "2F"
	cell, err := svc.Update(context.Background(), 1, models.CellInput{Name: "Soldagem 2F", Hours: 12, TechnicalCode: &code})
	require.NoError(t, err)
	assert.Equal(t, "Soldagem 2F", cell.Name)
	assert.Equal(t, 12, cell.Hours)
	require.NotNil(t, cell.TechnicalCode)
	assert.Equal(t, "2F", *cell.TechnicalCode)
}

func TestCellServiceUpdateMissing(t *testing.T) {
	svc := NewCellService(newMockCellRepo(), newMockAttendanceRepo(), nil, nil)

	_, err := svc.Update(context.Background(), 42, models.CellInput{Name: "Soldagem 2F"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "Célula não encontrada", appErr.Message)
}

func TestCellServiceUpdateRejectsEmptyName(t *testing.T) {
	svc := NewCellService(newMockCellRepo(weldingCell()), newMockAttendanceRepo(), nil, nil)

	_, err := svc.Update(context.Background(), 1, models.CellInput{Hours: 4})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCellServiceRegisterAttendanceUpserts(t *testing.T) {
	attendances := newMockAttendanceRepo()
	svc := NewCellService(newMockCellRepo(weldingCell()), attendances, nil, nil)

	present := true
	first, err := svc.RegisterAttendance(context.Background(), 1, models.AttendanceInput{StudentID: 5, Present: &present, HoursDone: 4})
	require.NoError(t, err)

	// A second registration for the same (student, cell) pair overwrites the
	// previous row instead of creating a new one.
	absent := false
	second, err := svc.RegisterAttendance(context.Background(), 1, models.AttendanceInput{StudentID: 5, Present: &absent, HoursDone: 0})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.Present)
	assert.False(t, *second.Present)
	assert.Zero(t, second.HoursDone)
	assert.Len(t, attendances.rows, 1)
}

func TestCellServiceRegisterAttendanceUnknownCell(t *testing.T) {
	svc := NewCellService(newMockCellRepo(), newMockAttendanceRepo(), nil, nil)

	_, err := svc.RegisterAttendance(context.Background(), 99, models.AttendanceInput{StudentID: 5, HoursDone: 2})
	require.Error(t, err)
	assert.Equal(t, "Célula não encontrada", appErrors.FromError(err).Message)
}

func TestCellServiceListAttendancesUnknownCell(t *testing.T) {
	svc := NewCellService(newMockCellRepo(), newMockAttendanceRepo(), nil, nil)

	_, err := svc.ListAttendances(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
