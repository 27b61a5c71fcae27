package services

import (
	"context"
	"fmt"
	"sync"

	"brandoraBack/internal/backend"
	"brandoraBack/internal/loader"
	"brandoraBack/internal/models"
)

// SubscriptionService caches the current subscription per console user. The
// key is global per user (a user has one current subscription), the loaded
// flag is a plain boolean and a forced reload always refetches.
type SubscriptionService struct {
	Backend *backend.Client
	Loads   *loader.Group

	mu      sync.Mutex
	entries map[int]*subscriptionEntry
}

type subscriptionEntry struct {
	state loader.State
	mu    sync.Mutex
	sub   models.Subscription
}

func (e *subscriptionEntry) get() models.Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sub
}

func (e *subscriptionEntry) set(sub models.Subscription) {
	e.mu.Lock()
	e.sub = sub
	e.mu.Unlock()
}

func (s *SubscriptionService) entry(userID int) *subscriptionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries == nil {
		s.entries = make(map[int]*subscriptionEntry)
	}
	e, ok := s.entries[userID]
	if !ok {
		e = &subscriptionEntry{}
		s.entries[userID] = e
	}
	return e
}

// Current returns the user's subscription, fetching it at most once until a
// forced reload. Concurrent callers share a single backend request.
func (s *SubscriptionService) Current(ctx context.Context, userID int, force bool) (models.Subscription, error) {
	e := s.entry(userID)
	if !force && e.state.IsLoaded("") {
		return e.get(), nil
	}
	key := fmt.Sprintf("subscription:current:%d", userID)
	v, err := s.Loads.Do(ctx, key, force, func(ctx context.Context) (interface{}, error) {
		seq := e.state.Begin()
		sub, err := s.Backend.CurrentSubscription(ctx)
		if err != nil {
			e.state.Fail(seq, err.Error())
			return nil, err
		}
		if e.state.Complete(seq, "") {
			e.set(sub)
		}
		return sub, nil
	})
	if err != nil {
		return models.Subscription{}, err
	}
	return v.(models.Subscription), nil
}

// ChangePlan switches the subscription and applies the backend's confirmed
// state to the cache immediately.
func (s *SubscriptionService) ChangePlan(ctx context.Context, userID int, planID string) (models.Subscription, error) {
	sub, err := s.Backend.ChangePlan(ctx, planID)
	if err != nil {
		return models.Subscription{}, err
	}
	e := s.entry(userID)
	if e.state.Complete(e.state.Begin(), "") {
		e.set(sub)
	}
	return sub, nil
}

// Usage fetches credit usage analytics; never cached, the numbers move with
// every generation call.
func (s *SubscriptionService) Usage(ctx context.Context) (models.CreditUsage, error) {
	return s.Backend.CreditUsage(ctx)
}

// Reset drops the user's cached subscription, e.g. on logout.
func (s *SubscriptionService) Reset(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
}
