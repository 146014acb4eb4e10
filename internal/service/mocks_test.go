package service

import (
	"context"
	"mime/multipart"
	"time"

	"printshop/internal/model"
	"printshop/internal/storage"

	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 42
	}
	return args.Error(0)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindByInstitutionalID(ctx context.Context, institutionalID string) (*model.User, error) {
	args := m.Called(ctx, institutionalID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

type mockJobRepo struct {
	mock.Mock
}

func (m *mockJobRepo) Create(ctx context.Context, job *model.PrintJob) error {
	args := m.Called(ctx, job)
	if args.Error(0) == nil {
		job.ID = 7
	}
	return args.Error(0)
}

func (m *mockJobRepo) FindByID(ctx context.Context, id int64) (*model.PrintJob, error) {
	args := m.Called(ctx, id)
	j, _ := args.Get(0).(*model.PrintJob)
	return j, args.Error(1)
}

func (m *mockJobRepo) ListByUser(ctx context.Context, userID int) ([]model.PrintJob, error) {
	args := m.Called(ctx, userID)
	jobs, _ := args.Get(0).([]model.PrintJob)
	return jobs, args.Error(1)
}

func (m *mockJobRepo) ListActive(ctx context.Context) ([]model.PrintJob, error) {
	args := m.Called(ctx)
	jobs, _ := args.Get(0).([]model.PrintJob)
	return jobs, args.Error(1)
}

func (m *mockJobRepo) ListFinished(ctx context.Context, limit int) ([]model.PrintJob, error) {
	args := m.Called(ctx, limit)
	jobs, _ := args.Get(0).([]model.PrintJob)
	return jobs, args.Error(1)
}

func (m *mockJobRepo) UpdateStatus(ctx context.Context, id int64, from, to model.JobStatus, actorID int, at time.Time) (bool, error) {
	args := m.Called(ctx, id, from, to, actorID, at)
	return args.Bool(0), args.Error(1)
}

func (m *mockJobRepo) Stats(ctx context.Context) (*model.QueueStats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*model.QueueStats)
	return s, args.Error(1)
}

type mockDocs struct {
	mock.Mock
}

func (m *mockDocs) Ingest(fileHeader *multipart.FileHeader) (*storage.Document, error) {
	args := m.Called(fileHeader)
	d, _ := args.Get(0).(*storage.Document)
	return d, args.Error(1)
}

func (m *mockDocs) Path(storedFilename string) (string, error) {
	args := m.Called(storedFilename)
	return args.String(0), args.Error(1)
}

func (m *mockDocs) Remove(storedFilename string) error {
	return m.Called(storedFilename).Error(0)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) JobSubmitted(job *model.PrintJob) { m.Called(job) }

func (m *mockRecorder) JobStatusChanged(from, to model.JobStatus) { m.Called(from, to) }

type fixedLimiter struct {
	allowed bool
	calls   []string
}

func (l *fixedLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.calls = append(l.calls, key)
	return l.allowed, nil
}

func (l *fixedLimiter) Close() error { return nil }
