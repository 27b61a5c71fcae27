package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"brandoraBack/internal/models"
)

type ScrapeJobRepository struct {
	DB *sql.DB
}

func (r *ScrapeJobRepository) Create(ctx context.Context, manifestID string, triggeredBy int) (models.ScrapeJob, error) {
	job := models.ScrapeJob{
		ID:          uuid.NewString(),
		ManifestID:  manifestID,
		Status:      models.JobStatusQueued,
		TriggeredBy: triggeredBy,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := r.DB.ExecContext(ctx, `
        INSERT INTO scrape_jobs (id, manifest_id, status, triggered_by, created_at)
        VALUES ($1, $2, $3, $4, $5)`,
		job.ID, job.ManifestID, job.Status, job.TriggeredBy, job.CreatedAt)
	if err != nil {
		return models.ScrapeJob{}, err
	}
	return job, nil
}

func (r *ScrapeJobRepository) GetByID(ctx context.Context, id string) (models.ScrapeJob, error) {
	var job models.ScrapeJob
	var snapshot, jobErr sql.NullString
	var started, finished sql.NullTime
	err := r.DB.QueryRowContext(ctx, `
        SELECT id, manifest_id, status, triggered_by, snapshot_url, error, started_at, finished_at, created_at
        FROM scrape_jobs WHERE id = $1`, id).
		Scan(&job.ID, &job.ManifestID, &job.Status, &job.TriggeredBy, &snapshot, &jobErr, &started, &finished, &job.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ScrapeJob{}, models.ErrJobNotFound
	}
	if err != nil {
		return models.ScrapeJob{}, err
	}
	if snapshot.Valid {
		job.SnapshotURL = &snapshot.String
	}
	if jobErr.Valid {
		job.Error = &jobErr.String
	}
	if started.Valid {
		job.StartedAt = &started.Time
	}
	if finished.Valid {
		job.FinishedAt = &finished.Time
	}
	return job, nil
}

// SetStatus updates a job's status. startedAt/finishedAt/snapshotURL/jobErr
// are applied only when non-nil, so a rollback can restore a prior status
// without touching timestamps.
func (r *ScrapeJobRepository) SetStatus(ctx context.Context, id, status string, startedAt, finishedAt *time.Time, snapshotURL, jobErr *string) error {
	res, err := r.DB.ExecContext(ctx, `
        UPDATE scrape_jobs
        SET status = $2,
            started_at = COALESCE($3, started_at),
            finished_at = COALESCE($4, finished_at),
            snapshot_url = COALESCE($5, snapshot_url),
            error = COALESCE($6, error)
        WHERE id = $1`,
		id, status, startedAt, finishedAt, snapshotURL, jobErr)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrJobNotFound
	}
	return nil
}

func (r *ScrapeJobRepository) ListByManifest(ctx context.Context, manifestID string, limit int) ([]models.ScrapeJob, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.DB.QueryContext(ctx, `
        SELECT id, manifest_id, status, triggered_by, snapshot_url, error, started_at, finished_at, created_at
        FROM scrape_jobs WHERE manifest_id = $1
        ORDER BY created_at DESC LIMIT $2`, manifestID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

func (r *ScrapeJobRepository) ListRecent(ctx context.Context, limit int) ([]models.ScrapeJob, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.DB.QueryContext(ctx, `
        SELECT id, manifest_id, status, triggered_by, snapshot_url, error, started_at, finished_at, created_at
        FROM scrape_jobs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

func scanJobs(rows *sql.Rows) ([]models.ScrapeJob, error) {
	var jobs []models.ScrapeJob
	for rows.Next() {
		var job models.ScrapeJob
		var snapshot, jobErr sql.NullString
		var started, finished sql.NullTime
		if err := rows.Scan(&job.ID, &job.ManifestID, &job.Status, &job.TriggeredBy, &snapshot, &jobErr, &started, &finished, &job.CreatedAt); err != nil {
			return nil, err
		}
		if snapshot.Valid {
			job.SnapshotURL = &snapshot.String
		}
		if jobErr.Valid {
			job.Error = &jobErr.String
		}
		if started.Valid {
			job.StartedAt = &started.Time
		}
		if finished.Valid {
			job.FinishedAt = &finished.Time
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}
