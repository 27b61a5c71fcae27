package models

import "time"

// Scrape job statuses. Triggering a job patches it to "processing"
// optimistically; the patch is rolled back if the scraper backend rejects it.
const (
	JobStatusIdle       = "idle"
	JobStatusQueued     = "queued"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// Manifest describes a scrape target operated from the ops dashboard.
type Manifest struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	TargetURL    string     `json:"target_url"`
	Selector     string     `json:"selector,omitempty"`
	ScheduleCRON string     `json:"schedule_cron,omitempty"`
	Enabled      bool       `json:"enabled"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// ScrapeJob is one execution of a manifest.
type ScrapeJob struct {
	ID          string     `json:"id"`
	ManifestID  string     `json:"manifest_id"`
	Status      string     `json:"status"`
	TriggeredBy int        `json:"triggered_by"`
	SnapshotURL *string    `json:"snapshot_url,omitempty"`
	Error       *string    `json:"error,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// JobEvent is published to Kafka and broadcast to dashboard websockets on
// every job status change.
type JobEvent struct {
	JobID      string    `json:"job_id"`
	ManifestID string    `json:"manifest_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// APIKey authenticates a scraper agent reporting job results.
type APIKey struct {
	ID        string     `json:"id"`
	Label     string     `json:"label"`
	Hash      string     `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}
