package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/academia-dev/academia-api/internal/models"
)

func attendanceRows(id, studentID, cellID int64, present *bool, hours float64, date time.Time) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "student_id", "cell_id", "present", "hours_done", "date", "created_at", "updated_at"}).
		AddRow(id, studentID, cellID, present, hours, date, now, now)
}

func TestAttendanceRepositoryUpsertReturnsRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	present := true
	date := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (student_id, cell_id) DO UPDATE")).
		WithArgs(int64(5), int64(9), &present, 4.0, date, sqlmock.AnyArg()).
		WillReturnRows(attendanceRows(1, 5, 9, &present, 4.0, date))

	attendance, err := repo.Upsert(context.Background(), models.AttendanceUpsert{
		StudentID: 5,
		CellID:    9,
		Present:   &present,
		HoursDone: 4.0,
		Date:      date,
	})
	require.NoError(t, err)
	require.Equal(t, int64(5), attendance.StudentID)
	require.Equal(t, int64(9), attendance.CellID)
	require.NotNil(t, attendance.Present)
	require.True(t, *attendance.Present)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryUpsertDefaultsDate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO attendances (student_id, cell_id, present, hours_done, date, created_at, updated_at)")).
		WithArgs(int64(5), int64(9), nil, 0.0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(attendanceRows(1, 5, 9, nil, 0, time.Now()))

	attendance, err := repo.Upsert(context.Background(), models.AttendanceUpsert{StudentID: 5, CellID: 9})
	require.NoError(t, err)
	require.Nil(t, attendance.Present)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryListByCourseFiltersStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	present := true
	rows := sqlmock.NewRows([]string{"student_name", "student_cpf", "module_name", "cell_name", "present", "hours_done", "date"}).
		AddRow("Maria Silva", "12345678900", "Fundamentos", "Soldagem 1F", &present, 4.0, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("WHERE m.course_id = $1 AND a.student_id = $2")).
		WithArgs(int64(2), int64(5)).
		WillReturnRows(rows)

	studentID := int64(5)
	records, err := repo.ListByCourse(context.Background(), 2, &studentID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Maria Silva", records[0].StudentName)
	require.NoError(t, mock.ExpectationsWereMet())
}
