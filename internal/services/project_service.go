package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"brandoraBack/internal/backend"
	"brandoraBack/internal/models"
)

const draftTTL = 30 * 24 * time.Hour

// ProjectService persists in-progress project creation drafts in Redis under
// a fixed per-user key. Every save overwrites the previous draft; the draft
// is cleared on successful submission or explicit reset.
type ProjectService struct {
	Backend *backend.Client
	Redis   *redis.Client
}

func draftKey(userID int) string {
	return fmt.Sprintf("project_draft:%d", userID)
}

// SaveDraft overwrites the user's draft.
func (s *ProjectService) SaveDraft(ctx context.Context, userID int, draft models.ProjectDraft) error {
	draft.SavedAt = time.Now().UTC()
	raw, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return s.Redis.Set(ctx, draftKey(userID), raw, draftTTL).Err()
}

// Draft returns the user's saved draft, or ErrDraftNotFound.
func (s *ProjectService) Draft(ctx context.Context, userID int) (models.ProjectDraft, error) {
	raw, err := s.Redis.Get(ctx, draftKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.ProjectDraft{}, models.ErrDraftNotFound
	}
	if err != nil {
		return models.ProjectDraft{}, err
	}
	var draft models.ProjectDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return models.ProjectDraft{}, err
	}
	return draft, nil
}

// ClearDraft removes the user's draft.
func (s *ProjectService) ClearDraft(ctx context.Context, userID int) error {
	return s.Redis.Del(ctx, draftKey(userID)).Err()
}

// Create validates the draft locally (validation failures never reach the
// backend), submits it, and clears the stored draft on success.
func (s *ProjectService) Create(ctx context.Context, userID int, draft models.ProjectDraft) (models.Project, error) {
	if err := models.ValidateProjectDraft(draft); err != nil {
		return models.Project{}, err
	}
	project, err := s.Backend.CreateProject(ctx, draft)
	if err != nil {
		return models.Project{}, err
	}
	// Draft cleanup is best-effort; the project already exists server-side.
	_ = s.ClearDraft(ctx, userID)
	return project, nil
}
