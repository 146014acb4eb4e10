package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"printshop/internal/model"

	"github.com/jackc/pgx/v5"
)

// PrintJobRepository defines operations for print job data
type PrintJobRepository interface {
	Create(ctx context.Context, job *model.PrintJob) error
	FindByID(ctx context.Context, id int64) (*model.PrintJob, error)
	ListByUser(ctx context.Context, userID int) ([]model.PrintJob, error)
	ListActive(ctx context.Context) ([]model.PrintJob, error)
	ListFinished(ctx context.Context, limit int) ([]model.PrintJob, error)
	// UpdateStatus moves a job from one status to another. It reports false
	// when no row matched id and from.
	UpdateStatus(ctx context.Context, id int64, from, to model.JobStatus, actorID int, at time.Time) (bool, error)
	Stats(ctx context.Context) (*model.QueueStats, error)
}

type printJobRepository struct {
	db DB
}

// NewPrintJobRepository creates a new PrintJobRepository
func NewPrintJobRepository(db DB) PrintJobRepository {
	return &printJobRepository{db: db}
}

const jobColumns = `id, user_id, stored_filename, original_filename, pages, copies, color, cost, status,
       created_at, completed_at, completed_by`

// Create inserts a new job in the Queued state
func (r *printJobRepository) Create(ctx context.Context, j *model.PrintJob) error {
	sql := `INSERT INTO print_jobs (user_id, stored_filename, original_filename, pages, copies, color, cost, status, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	j.Status = model.StatusQueued
	j.CompletedAt = nil
	j.CompletedBy = nil
	err := r.db.QueryRow(ctx, sql, j.UserID, j.StoredFilename, j.OriginalFilename, j.Pages, j.Copies,
		j.Color, j.Cost, string(j.Status), j.CreatedAt).Scan(&j.ID)
	if err != nil {
		return fmt.Errorf("failed to create print job: %w", err)
	}
	return nil
}

// FindByID retrieves a job by its ID; a missing job is (nil, nil)
func (r *printJobRepository) FindByID(ctx context.Context, id int64) (*model.PrintJob, error) {
	j, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM print_jobs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find print job by ID: %w", err)
	}
	return j, nil
}

// ListByUser returns a student's jobs, newest first
func (r *printJobRepository) ListByUser(ctx context.Context, userID int) ([]model.PrintJob, error) {
	sql := `SELECT ` + jobColumns + ` FROM print_jobs WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, sql, userID)
}

// ListActive returns non-terminal jobs in queue order
func (r *printJobRepository) ListActive(ctx context.Context) ([]model.PrintJob, error) {
	sql := `SELECT ` + jobColumns + ` FROM print_jobs WHERE status IN ($1, $2) ORDER BY created_at ASC, id ASC`
	return r.list(ctx, sql, string(model.StatusQueued), string(model.StatusPrinting))
}

// ListFinished returns terminal jobs, most recently finished first
func (r *printJobRepository) ListFinished(ctx context.Context, limit int) ([]model.PrintJob, error) {
	sql := `SELECT ` + jobColumns + ` FROM print_jobs WHERE status IN ($1, $2)
            ORDER BY COALESCE(completed_at, created_at) DESC, id DESC LIMIT $3`
	return r.list(ctx, sql, string(model.StatusCompleted), string(model.StatusCancelled), limit)
}

// UpdateStatus stamps completion fields iff the target status is Completed
// and clears them otherwise, in one statement guarded by the expected status.
func (r *printJobRepository) UpdateStatus(ctx context.Context, id int64, from, to model.JobStatus, actorID int, at time.Time) (bool, error) {
	var completedAt *time.Time
	var completedBy *int
	if to == model.StatusCompleted {
		completedAt = &at
		completedBy = &actorID
	}

	sql := `UPDATE print_jobs SET status = $1, completed_at = $2, completed_by = $3
            WHERE id = $4 AND status = $5`
	tag, err := r.db.Exec(ctx, sql, string(to), completedAt, completedBy, id, string(from))
	if err != nil {
		return false, fmt.Errorf("failed to update print job status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Stats aggregates job counts per status and completed revenue
func (r *printJobRepository) Stats(ctx context.Context) (*model.QueueStats, error) {
	stats := &model.QueueStats{ByStatus: make(map[model.JobStatus]int64)}
	for _, s := range model.AllStatuses {
		stats.ByStatus[s] = 0
	}

	sql := `SELECT status, COUNT(*), COALESCE(SUM(cost), 0), COALESCE(SUM(pages * copies), 0)
            FROM print_jobs GROUP BY status`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query print job stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count, cost, pages int64
		if err := rows.Scan(&status, &count, &cost, &pages); err != nil {
			return nil, fmt.Errorf("failed to scan print job stats: %w", err)
		}
		stats.ByStatus[model.JobStatus(status)] = count
		if model.JobStatus(status) == model.StatusCompleted {
			stats.CompletedRevenue = cost
			stats.CompletedPages = pages
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating print job stats: %w", err)
	}
	return stats, nil
}

func (r *printJobRepository) list(ctx context.Context, sql string, args ...any) ([]model.PrintJob, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query print jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.PrintJob
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan print job row: %w", err)
		}
		jobs = append(jobs, *j)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating print job rows: %w", err)
	}
	return jobs, nil
}

func scanJob(row pgx.Row) (*model.PrintJob, error) {
	j := &model.PrintJob{}
	var status string
	err := row.Scan(&j.ID, &j.UserID, &j.StoredFilename, &j.OriginalFilename, &j.Pages, &j.Copies,
		&j.Color, &j.Cost, &status, &j.CreatedAt, &j.CompletedAt, &j.CompletedBy)
	if err != nil {
		return nil, err
	}
	j.Status = model.JobStatus(status)
	return j, nil
}
