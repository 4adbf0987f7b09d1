package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/academia-dev/academia-api/internal/models"
)

func TestCourseRepositoryDeleteCascadesInDependencyOrder(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM attendances WHERE cell_id IN (")).
		WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cells WHERE module_id IN (SELECT id FROM modules WHERE course_id = $1)")).
		WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 6))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM enrollments WHERE module_id IN (SELECT id FROM modules WHERE course_id = $1)")).
		WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM modules WHERE course_id = $1")).
		WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courses WHERE id = $1")).
		WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 4))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryDeleteMissingCourse(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM attendances")).
		WithArgs(int64(99)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cells")).
		WithArgs(int64(99)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM enrollments")).
		WithArgs(int64(99)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM modules")).
		WithArgs(int64(99)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courses")).
		WithArgs(int64(99)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 99)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryUpdateRecreatesChildren(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM attendances")).
		WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cells")).
		WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM enrollments")).
		WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM modules")).
		WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE courses SET name = $2")).
		WithArgs(int64(4), "Solda Básica", nil, 60, nil, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO modules (course_id, name, description, hours, created_at, updated_at)")).
		WithArgs(int64(4), "Fundamentos", nil, 20, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cells (module_id, name, description, hours, technical_code, created_at, updated_at)")).
		WithArgs(int64(11), "Soldagem 1F", nil, 4, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	input := models.CourseInput{
		Name:       "Solda Básica",
		TotalHours: 60,
		Modules: []models.ModuleInput{
			{Name: "Fundamentos", Hours: 20, Cells: []models.CellInput{{Name: "Soldagem 1F", Hours: 4}}},
		},
	}
	require.NoError(t, repo.Update(context.Background(), 4, input))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryFindByIDAssemblesHierarchy(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	now := time.Now()
	courseRows := sqlmock.NewRows([]string{"id", "name", "description", "total_hours", "prerequisites", "required_materials", "created_at", "updated_at"}).
		AddRow(int64(4), "Solda Básica", nil, 60, nil, nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM courses WHERE id = $1")).
		WithArgs(int64(4)).WillReturnRows(courseRows)

	moduleRows := sqlmock.NewRows([]string{"id", "course_id", "name", "description", "hours", "created_at", "updated_at"}).
		AddRow(int64(11), int64(4), "Fundamentos", nil, 20, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM modules WHERE course_id IN (?)")).
		WithArgs(int64(4)).WillReturnRows(moduleRows)

	cellRows := sqlmock.NewRows([]string{"id", "module_id", "name", "description", "hours", "technical_code", "created_at", "updated_at"}).
		AddRow(int64(21), int64(11), "Soldagem 1F", nil, 4, "1F", now, now).
		AddRow(int64(22), int64(11), "Soldagem 2F", nil, 4, "2F", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM cells WHERE module_id IN (?)")).
		WithArgs(int64(11)).WillReturnRows(cellRows)

	course, err := repo.FindByID(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, course.Modules, 1)
	require.Len(t, course.Modules[0].Cells, 2)
	require.Equal(t, int64(11), course.Modules[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
