package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/academia-dev/academia-api/internal/models"
	"github.com/academia-dev/academia-api/internal/repository"
	appErrors "github.com/academia-dev/academia-api/pkg/errors"
	"github.com/academia-dev/academia-api/pkg/jobs"
)

type mockReportStore struct {
	jobs   map[string]*models.ReportJob
	nextID int
}

func newMockReportStore() *mockReportStore {
	return &mockReportStore{jobs: make(map[string]*models.ReportJob), nextID: 1}
}

func (m *mockReportStore) Create(ctx context.Context, job *models.ReportJob) error {
	if job.ID == "" {
		job.ID = fmt.Sprintf("job-%d", m.nextID)
		m.nextID++
	}
	job.CreatedAt = time.Now().UTC()
	stored := *job
	m.jobs[job.ID] = &stored
	return nil
}

func (m *mockReportStore) GetByID(ctx context.Context, id string) (*models.ReportJob, error) {
	job, ok := m.jobs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *job
	return &copied, nil
}

func (m *mockReportStore) Update(ctx context.Context, id string, params repository.UpdateReportJobParams) error {
	job, ok := m.jobs[id]
	if !ok {
		return sql.ErrNoRows
	}
	if params.Status != nil {
		job.Status = *params.Status
	}
	if params.Progress != nil {
		job.Progress = *params.Progress
	}
	if params.ResultURL != nil {
		job.ResultURL = params.ResultURL
	}
	if params.ErrorMessage != nil {
		job.ErrorMessage = params.ErrorMessage
	}
	if params.FinishedAt != nil {
		job.FinishedAt = params.FinishedAt
	}
	return nil
}

func (m *mockReportStore) ListQueued(ctx context.Context, limit int) ([]models.ReportJob, error) {
	var out []models.ReportJob
	for _, job := range m.jobs {
		if job.Status == models.ReportStatusQueued {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (m *mockReportStore) ListFinishedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.ReportJob, error) {
	return nil, nil
}

type mockDispatcher struct {
	enqueued []jobs.Job
	err      error
}

func (m *mockDispatcher) Enqueue(job jobs.Job) error {
	if m.err != nil {
		return m.err
	}
	m.enqueued = append(m.enqueued, job)
	return nil
}

type mockGenerator struct {
	result *ExportResult
	err    error
	calls  int
}

func (m *mockGenerator) Generate(ctx context.Context, job *models.ReportJob) (*ExportResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func validReportRequest() models.CreateReportRequest {
	return models.CreateReportRequest{
		Type:     models.ReportTypeAttendance,
		CourseID: 1,
		Format:   models.ReportFormatCSV,
	}
}

func TestReportServiceCreateJobEnqueues(t *testing.T) {
	store := newMockReportStore()
	dispatcher := &mockDispatcher{}
	courses := &mockCourseFinder{courses: map[int64]*models.Course{1: {ID: 1, Name: "Solda Básica"}}}
	svc := NewReportService(store, courses, dispatcher, nil, nil, nil, ReportServiceConfig{})

	status, err := svc.CreateJob(context.Background(), validReportRequest(), 7)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusQueued, status.Status)
	require.Len(t, dispatcher.enqueued, 1)
	assert.Equal(t, status.ID, dispatcher.enqueued[0].ID)

	stored, err := store.GetByID(context.Background(), status.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), stored.CreatedBy)
	assert.Equal(t, models.ReportFormatCSV, stored.Params.Format)
}

func TestReportServiceCreateJobUnknownCourse(t *testing.T) {
	store := newMockReportStore()
	svc := NewReportService(store, &mockCourseFinder{courses: map[int64]*models.Course{}}, &mockDispatcher{}, nil, nil, nil, ReportServiceConfig{})

	_, err := svc.CreateJob(context.Background(), validReportRequest(), 7)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "Curso não encontrado", appErr.Message)
	assert.Empty(t, store.jobs)
}

func TestReportServiceCreateJobRejectsBadFormat(t *testing.T) {
	svc := NewReportService(newMockReportStore(), &mockCourseFinder{}, &mockDispatcher{}, nil, nil, nil, ReportServiceConfig{})

	req := validReportRequest()
	req.Format = "xlsx"
	_, err := svc.CreateJob(context.Background(), req, 7)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestReportServiceCreateJobEnqueueFailureMarksFailed(t *testing.T) {
	store := newMockReportStore()
	dispatcher := &mockDispatcher{err: errors.New("queue is full")}
	courses := &mockCourseFinder{courses: map[int64]*models.Course{1: {ID: 1}}}
	svc := NewReportService(store, courses, dispatcher, nil, nil, nil, ReportServiceConfig{})

	_, err := svc.CreateJob(context.Background(), validReportRequest(), 7)
	require.Error(t, err)

	require.Len(t, store.jobs, 1)
	for _, job := range store.jobs {
		assert.Equal(t, models.ReportStatusFailed, job.Status)
		require.NotNil(t, job.FinishedAt)
	}
}

func TestReportServiceGetStatusMissing(t *testing.T) {
	svc := NewReportService(newMockReportStore(), &mockCourseFinder{}, &mockDispatcher{}, nil, nil, nil, ReportServiceConfig{})

	_, err := svc.GetStatus(context.Background(), "nope", 7, models.RoleAdmin)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "Relatório não encontrado", appErr.Message)
}

func TestReportServiceGetStatusHiddenFromOtherUsers(t *testing.T) {
	store := newMockReportStore()
	courses := &mockCourseFinder{courses: map[int64]*models.Course{1: {ID: 1}}}
	svc := NewReportService(store, courses, &mockDispatcher{}, nil, nil, nil, ReportServiceConfig{})

	created, err := svc.CreateJob(context.Background(), validReportRequest(), 7)
	require.NoError(t, err)

	// Another instructor cannot read someone else's job; admins can.
	_, err = svc.GetStatus(context.Background(), created.ID, 8, models.RoleInstructor)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	status, err := svc.GetStatus(context.Background(), created.ID, 7, models.RoleInstructor)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusQueued, status.Status)

	_, err = svc.GetStatus(context.Background(), created.ID, 99, models.RoleAdmin)
	require.NoError(t, err)
}

func TestReportServiceRecoverPendingJobs(t *testing.T) {
	store := newMockReportStore()
	require.NoError(t, store.Create(context.Background(), &models.ReportJob{Status: models.ReportStatusQueued, Type: models.ReportTypeAttendance}))
	require.NoError(t, store.Create(context.Background(), &models.ReportJob{Status: models.ReportStatusFinished, Type: models.ReportTypeProgress}))
	dispatcher := &mockDispatcher{}
	svc := NewReportService(store, &mockCourseFinder{}, dispatcher, nil, nil, nil, ReportServiceConfig{})

	svc.RecoverPendingJobs(context.Background())
	require.Len(t, dispatcher.enqueued, 1)
}

func queuedJob(t *testing.T, store *mockReportStore) *models.ReportJob {
	t.Helper()
	job := &models.ReportJob{
		Type:   models.ReportTypeAttendance,
		Params: models.ReportJobParams{CourseID: 1, Format: models.ReportFormatCSV},
		Status: models.ReportStatusQueued,
	}
	require.NoError(t, store.Create(context.Background(), job))
	return job
}

func TestReportWorkerHandleSuccess(t *testing.T) {
	store := newMockReportStore()
	job := queuedJob(t, store)
	gen := &mockGenerator{result: &ExportResult{URL: "/api/relatorios/download/tok123", Format: models.ReportFormatCSV}}
	worker := NewReportWorker(store, gen, nil, 3, nil)

	err := worker.Handle(context.Background(), jobs.Job{ID: job.ID, Attempt: 1})
	require.NoError(t, err)

	stored, err := store.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusFinished, stored.Status)
	assert.Equal(t, 100, stored.Progress)
	require.NotNil(t, stored.ResultURL)
	assert.Equal(t, "/api/relatorios/download/tok123", *stored.ResultURL)
	require.NotNil(t, stored.FinishedAt)
}

func TestReportWorkerHandleRetriesBeforeFailing(t *testing.T) {
	store := newMockReportStore()
	job := queuedJob(t, store)
	gen := &mockGenerator{err: errors.New("disk full")}
	worker := NewReportWorker(store, gen, nil, 3, nil)

	err := worker.Handle(context.Background(), jobs.Job{ID: job.ID, Attempt: 1})
	require.Error(t, err)

	stored, err := store.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusQueued, stored.Status, "should be requeued while attempts remain")
	assert.Equal(t, 0, stored.Progress)
}

func TestReportWorkerHandleExhaustedRetries(t *testing.T) {
	store := newMockReportStore()
	job := queuedJob(t, store)
	gen := &mockGenerator{err: errors.New("disk full")}
	worker := NewReportWorker(store, gen, nil, 3, nil)

	err := worker.Handle(context.Background(), jobs.Job{ID: job.ID, Attempt: 3})
	require.Error(t, err)

	stored, err := store.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusFailed, stored.Status)
	require.NotNil(t, stored.ErrorMessage)
	assert.Equal(t, "disk full", *stored.ErrorMessage)
	require.NotNil(t, stored.FinishedAt)
}

func TestReportWorkerHandleUnknownJob(t *testing.T) {
	worker := NewReportWorker(newMockReportStore(), &mockGenerator{}, nil, 3, nil)

	err := worker.Handle(context.Background(), jobs.Job{ID: "ghost"})
	require.ErrorIs(t, err, sql.ErrNoRows)
}
