package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/rand"

	"brandoraBack/internal/backend"
	"brandoraBack/internal/models"
	"brandoraBack/internal/repositories"
)

// JobBroadcaster pushes job status changes to connected dashboard clients.
type JobBroadcaster interface {
	BroadcastJob(ev models.JobEvent)
}

// SnapshotStore persists raw scrape results and returns their URL.
type SnapshotStore interface {
	UploadSnapshot(jobID string, body []byte) (string, error)
}

// JobEventPublisher forwards job lifecycle events to the message bus.
type JobEventPublisher interface {
	PublishJobEvent(ev models.JobEvent)
}

// ScraperService runs the scraping operations dashboard: manifests and jobs
// live in the local database, execution happens on the scraper backend.
type ScraperService struct {
	Backend   *backend.Client
	Manifests *repositories.ManifestRepository
	Jobs      *repositories.ScrapeJobRepository
	Keys      *repositories.APIKeyRepository
	Snapshots SnapshotStore
	Events    JobEventPublisher
	Hub       JobBroadcaster
	ErrorLog  *log.Logger
}

func (s *ScraperService) CreateManifest(ctx context.Context, m models.Manifest) (models.Manifest, error) {
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.TargetURL) == "" {
		return models.Manifest{}, models.ErrMissingField
	}
	return s.Manifests.Create(ctx, m)
}

func (s *ScraperService) UpdateManifest(ctx context.Context, m models.Manifest) (models.Manifest, error) {
	return s.Manifests.Update(ctx, m)
}

func (s *ScraperService) DeleteManifest(ctx context.Context, id string) error {
	return s.Manifests.Delete(ctx, id)
}

func (s *ScraperService) ListManifests(ctx context.Context) ([]models.Manifest, error) {
	return s.Manifests.List(ctx)
}

func (s *ScraperService) GetManifest(ctx context.Context, id string) (models.Manifest, error) {
	return s.Manifests.GetByID(ctx, id)
}

func (s *ScraperService) ListJobs(ctx context.Context, manifestID string, limit int) ([]models.ScrapeJob, error) {
	if manifestID == "" {
		return s.Jobs.ListRecent(ctx, limit)
	}
	return s.Jobs.ListByManifest(ctx, manifestID, limit)
}

// TriggerJob queues a job and optimistically marks it processing before the
// scraper backend confirms. The prior status is captured at mutation time and
// restored only on confirmed failure.
func (s *ScraperService) TriggerJob(ctx context.Context, manifestID string, userID int) (models.ScrapeJob, error) {
	manifest, err := s.Manifests.GetByID(ctx, manifestID)
	if err != nil {
		return models.ScrapeJob{}, err
	}
	if !manifest.Enabled {
		return models.ScrapeJob{}, fmt.Errorf("manifest %s is disabled", manifest.ID)
	}

	job, err := s.Jobs.Create(ctx, manifest.ID, userID)
	if err != nil {
		return models.ScrapeJob{}, err
	}

	priorStatus := job.Status
	now := time.Now().UTC()
	if err := s.Jobs.SetStatus(ctx, job.ID, models.JobStatusProcessing, &now, nil, nil, nil); err != nil {
		return models.ScrapeJob{}, err
	}
	s.emit(job.ID, manifest.ID, models.JobStatusProcessing)

	if err := s.Backend.TriggerScrape(ctx, manifest.ID, job.ID); err != nil {
		if rbErr := s.Jobs.SetStatus(ctx, job.ID, priorStatus, nil, nil, nil, nil); rbErr != nil && s.ErrorLog != nil {
			s.ErrorLog.Printf("rollback of job %s to %s failed: %v", job.ID, priorStatus, rbErr)
		}
		s.emit(job.ID, manifest.ID, priorStatus)
		return models.ScrapeJob{}, err
	}

	job.Status = models.JobStatusProcessing
	job.StartedAt = &now
	return job, nil
}

// CompleteJob records a result reported by a scraper agent. Successful runs
// get their snapshot uploaded to object storage first.
func (s *ScraperService) CompleteJob(ctx context.Context, jobID string, body []byte, jobErr string) (models.ScrapeJob, error) {
	job, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return models.ScrapeJob{}, err
	}

	now := time.Now().UTC()
	if jobErr != "" {
		if err := s.Jobs.SetStatus(ctx, job.ID, models.JobStatusFailed, nil, &now, nil, &jobErr); err != nil {
			return models.ScrapeJob{}, err
		}
		s.emit(job.ID, job.ManifestID, models.JobStatusFailed)
		return s.Jobs.GetByID(ctx, jobID)
	}

	snapshotURL, err := s.Snapshots.UploadSnapshot(job.ID, body)
	if err != nil {
		return models.ScrapeJob{}, err
	}
	if err := s.Jobs.SetStatus(ctx, job.ID, models.JobStatusCompleted, nil, &now, &snapshotURL, nil); err != nil {
		return models.ScrapeJob{}, err
	}
	s.emit(job.ID, job.ManifestID, models.JobStatusCompleted)
	return s.Jobs.GetByID(ctx, jobID)
}

// IssueAPIKey creates a scraper agent credential. The plaintext form
// "<id>.<secret>" is returned once; only the bcrypt hash is stored.
func (s *ScraperService) IssueAPIKey(ctx context.Context, label string) (string, models.APIKey, error) {
	if strings.TrimSpace(label) == "" {
		return "", models.APIKey{}, models.ErrMissingField
	}
	secret, err := randomSecret()
	if err != nil {
		return "", models.APIKey{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", models.APIKey{}, err
	}
	key := models.APIKey{
		ID:        uuid.NewString(),
		Label:     label,
		Hash:      string(hash),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Keys.Create(ctx, key); err != nil {
		return "", models.APIKey{}, err
	}
	return key.ID + "." + secret, key, nil
}

// VerifyAPIKey checks a presented "<id>.<secret>" credential.
func (s *ScraperService) VerifyAPIKey(ctx context.Context, presented string) error {
	id, secret, ok := strings.Cut(presented, ".")
	if !ok || id == "" || secret == "" {
		return models.ErrInvalidAPIKey
	}
	key, err := s.Keys.GetActive(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(key.Hash), []byte(secret)) != nil {
		return models.ErrInvalidAPIKey
	}
	return nil
}

func (s *ScraperService) ListAPIKeys(ctx context.Context) ([]models.APIKey, error) {
	return s.Keys.List(ctx)
}

func (s *ScraperService) RevokeAPIKey(ctx context.Context, id string) error {
	return s.Keys.Revoke(ctx, id)
}

func (s *ScraperService) emit(jobID, manifestID, status string) {
	ev := models.JobEvent{
		JobID:      jobID,
		ManifestID: manifestID,
		Status:     status,
		OccurredAt: time.Now().UTC(),
	}
	if s.Events != nil {
		s.Events.PublishJobEvent(ev)
	}
	if s.Hub != nil {
		s.Hub.BroadcastJob(ev)
	}
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", b), nil
}
