package services

import (
	"context"
	"fmt"
	"sync"

	"brandoraBack/internal/backend"
	"brandoraBack/internal/loader"
	"brandoraBack/internal/models"
)

// BrandMessageService caches the brand-message list for the project a user is
// currently working in. The staleness params carry the project id, so
// switching projects always refetches while same-project rereads do not.
type BrandMessageService struct {
	Backend *backend.Client
	Loads   *loader.Group

	mu      sync.Mutex
	entries map[int]*brandMessageEntry
}

type brandMessageEntry struct {
	state loader.State
	mu    sync.Mutex
	msgs  []models.BrandMessage
}

func (s *BrandMessageService) entry(userID int) *brandMessageEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries == nil {
		s.entries = make(map[int]*brandMessageEntry)
	}
	e, ok := s.entries[userID]
	if !ok {
		e = &brandMessageEntry{}
		s.entries[userID] = e
	}
	return e
}

// ListByProject returns the project's brand messages, fetching once per
// project until forced or until another project is requested.
func (s *BrandMessageService) ListByProject(ctx context.Context, userID int, projectID string, force bool) ([]models.BrandMessage, error) {
	e := s.entry(userID)
	if !force && e.state.IsLoaded(projectID) {
		return e.cached(), nil
	}
	key := fmt.Sprintf("brandmessage:%d:%s", userID, projectID)
	v, err := s.Loads.Do(ctx, key, force, func(ctx context.Context) (interface{}, error) {
		seq := e.state.Begin()
		msgs, err := s.Backend.BrandMessages(ctx, projectID)
		if err != nil {
			e.state.Fail(seq, err.Error())
			return nil, err
		}
		if e.state.Complete(seq, projectID) {
			e.mu.Lock()
			e.msgs = msgs
			e.mu.Unlock()
		}
		return msgs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.BrandMessage), nil
}

// Generate forwards a generation request and appends the result to the cache
// when the same project is still loaded.
func (s *BrandMessageService) Generate(ctx context.Context, userID int, req models.GenerateBrandMessageRequest) (models.BrandMessage, error) {
	msg, err := s.Backend.GenerateBrandMessage(ctx, req)
	if err != nil {
		return models.BrandMessage{}, err
	}
	e := s.entry(userID)
	if e.state.IsLoaded(req.ProjectID) {
		e.mu.Lock()
		e.msgs = append(e.msgs, msg)
		e.mu.Unlock()
	}
	return msg, nil
}

// Reset drops the user's cached brand messages.
func (s *BrandMessageService) Reset(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
}

func (e *brandMessageEntry) cached() []models.BrandMessage {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.BrandMessage, len(e.msgs))
	copy(out, e.msgs)
	return out
}
