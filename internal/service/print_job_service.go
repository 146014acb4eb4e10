package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"printshop/internal/logger"
	"printshop/internal/model"
	"printshop/internal/repository"
	"printshop/internal/storage"
)

const DefaultFinishedLimit = 50

// DocumentStore stores uploaded documents
type DocumentStore interface {
	Ingest(fileHeader *multipart.FileHeader) (*storage.Document, error)
	Path(storedFilename string) (string, error)
	Remove(storedFilename string) error
}

// Recorder receives job lifecycle events, e.g. for metrics
type Recorder interface {
	JobSubmitted(job *model.PrintJob)
	JobStatusChanged(from, to model.JobStatus)
}

type nopRecorder struct{}

func (nopRecorder) JobSubmitted(*model.PrintJob)          {}
func (nopRecorder) JobStatusChanged(_, _ model.JobStatus) {}

// QueueView is what staff see on their dashboard
type QueueView struct {
	Active   []model.PrintJob
	Finished []model.PrintJob
	Stats    *model.QueueStats
}

// PrintJobService defines the job lifecycle operations
type PrintJobService interface {
	Submit(ctx context.Context, actor model.Identity, fileHeader *multipart.FileHeader, copies int, color bool) (*model.PrintJob, error)
	ListForUser(ctx context.Context, actor model.Identity) ([]model.PrintJob, error)
	Queue(ctx context.Context, actor model.Identity, finishedLimit int) (*QueueView, error)
	SetStatus(ctx context.Context, actor model.Identity, jobID int64, status string) (*model.PrintJob, error)
	DocumentFor(ctx context.Context, actor model.Identity, jobID int64) (string, string, error) // returns path and download name
}

type printJobService struct {
	repo     repository.PrintJobRepository
	docs     DocumentStore
	recorder Recorder
	now      func() time.Time
}

// NewPrintJobService creates a new PrintJobService. A nil recorder is allowed.
func NewPrintJobService(repo repository.PrintJobRepository, docs DocumentStore, recorder Recorder) PrintJobService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &printJobService{repo: repo, docs: docs, recorder: recorder, now: time.Now}
}

// Submit ingests the upload, prices it and queues it
func (s *printJobService) Submit(ctx context.Context, actor model.Identity, fileHeader *multipart.FileHeader, copies int, color bool) (*model.PrintJob, error) {
	if !actor.Role.Can(model.CapSubmitJobs) {
		return nil, ErrForbidden
	}
	if copies <= 0 {
		return nil, ErrInvalidQuantity
	}
	if copies > MaxCopies {
		return nil, ErrTooManyCopies
	}

	doc, err := s.docs.Ingest(fileHeader)
	if err != nil {
		return nil, err
	}

	cost, err := ComputeCost(doc.Pages, copies, color)
	if err != nil {
		_ = s.docs.Remove(doc.StoredFilename)
		return nil, err
	}

	job := &model.PrintJob{
		UserID:           actor.UserID,
		StoredFilename:   doc.StoredFilename,
		OriginalFilename: doc.OriginalFilename,
		Pages:            doc.Pages,
		Copies:           copies,
		Color:            color,
		Cost:             cost,
		Status:           model.StatusQueued,
		CreatedAt:        s.now(),
	}
	if err := s.repo.Create(ctx, job); err != nil {
		if rmErr := s.docs.Remove(doc.StoredFilename); rmErr != nil {
			logger.Error().Err(rmErr).Str("file", doc.StoredFilename).Msg("Failed to clean up orphaned upload")
		}
		return nil, fmt.Errorf("failed to create print job in repo: %w", err)
	}

	s.recorder.JobSubmitted(job)
	logger.Info().Int64("job_id", job.ID).Int("user_id", actor.UserID).Int64("cost", cost).Msg("Print job queued")
	return job, nil
}

// ListForUser returns the caller's own jobs, newest first
func (s *printJobService) ListForUser(ctx context.Context, actor model.Identity) ([]model.PrintJob, error) {
	jobs, err := s.repo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user jobs from repo: %w", err)
	}
	return jobs, nil
}

// Queue returns the staff view of active and finished jobs
func (s *printJobService) Queue(ctx context.Context, actor model.Identity, finishedLimit int) (*QueueView, error) {
	if !actor.Role.Can(model.CapManageQueue) {
		return nil, ErrForbidden
	}
	if finishedLimit <= 0 {
		finishedLimit = DefaultFinishedLimit
	}

	active, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active jobs: %w", err)
	}
	finished, err := s.repo.ListFinished(ctx, finishedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list finished jobs: %w", err)
	}
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get queue stats: %w", err)
	}
	return &QueueView{Active: active, Finished: finished, Stats: stats}, nil
}

// SetStatus applies a staff-initiated transition
func (s *printJobService) SetStatus(ctx context.Context, actor model.Identity, jobID int64, status string) (*model.PrintJob, error) {
	if !actor.Role.Can(model.CapManageQueue) {
		return nil, ErrForbidden
	}
	next, err := model.ParseJobStatus(status)
	if err != nil {
		return nil, ErrInvalidStatus
	}

	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to find job for status update: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	if !job.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s to %s", ErrIllegalTransition, job.Status, next)
	}

	at := s.now()
	updated, err := s.repo.UpdateStatus(ctx, jobID, job.Status, next, actor.UserID, at)
	if err != nil {
		return nil, fmt.Errorf("failed to update job status: %w", err)
	}
	if !updated {
		current, err := s.repo.FindByID(ctx, jobID)
		if err != nil {
			return nil, fmt.Errorf("failed to re-read job after update: %w", err)
		}
		if current == nil {
			return nil, ErrJobNotFound
		}
		return nil, ErrStatusConflict
	}

	prev := job.Status
	job.Status = next
	job.CompletedAt, job.CompletedBy = nil, nil
	if next == model.StatusCompleted {
		staffID := actor.UserID
		job.CompletedAt = &at
		job.CompletedBy = &staffID
	}

	s.recorder.JobStatusChanged(prev, next)
	logger.Info().Int64("job_id", jobID).Int("staff_id", actor.UserID).
		Str("from", string(prev)).Str("to", string(next)).Msg("Print job status changed")
	return job, nil
}

// DocumentFor authorises a download for the owner or staff
func (s *printJobService) DocumentFor(ctx context.Context, actor model.Identity, jobID int64) (string, string, error) {
	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return "", "", fmt.Errorf("failed to find job for download: %w", err)
	}
	if job == nil {
		return "", "", ErrJobNotFound
	}
	if job.UserID != actor.UserID && !actor.Role.Can(model.CapReadAnyDocument) {
		return "", "", ErrForbidden
	}

	path, err := s.docs.Path(job.StoredFilename)
	if err != nil {
		return "", "", err
	}
	return path, job.OriginalFilename, nil
}
