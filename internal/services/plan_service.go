package services

import (
	"context"
	"errors"
	"sync"

	"brandoraBack/internal/backend"
	"brandoraBack/internal/loader"
	"brandoraBack/internal/models"
)

// PlanListOptions selects which plan listing to load. The options are part of
// the staleness params: asking for a different listing refetches even when
// one is already loaded.
type PlanListOptions struct {
	Force           bool
	IncludeInactive bool
	Public          bool
}

func (o PlanListOptions) params() string {
	switch {
	case o.Public:
		return "public"
	case o.IncludeInactive:
		return "all"
	default:
		return "active"
	}
}

// PlanService caches the plan list and individual plans. The list carries an
// explicit loaded flag: an empty but successful fetch counts as loaded and is
// not refetched until forced.
type PlanService struct {
	Backend *backend.Client
	Loads   *loader.Group

	listMu    sync.Mutex
	list      []models.Plan
	listState loader.State

	byIDMu sync.Mutex
	byID   map[string]*planEntry
}

type planEntry struct {
	state loader.State
	mu    sync.Mutex
	plan  models.Plan
}

// List returns the plan listing selected by opts, deduplicating concurrent
// fetches per listing variant.
func (s *PlanService) List(ctx context.Context, opts PlanListOptions) ([]models.Plan, error) {
	params := opts.params()
	if !opts.Force && s.listState.IsLoaded(params) {
		return s.cachedList(), nil
	}
	v, err := s.Loads.Do(ctx, "plan:list:"+params, opts.Force, func(ctx context.Context) (interface{}, error) {
		seq := s.listState.Begin()
		var plans []models.Plan
		var err error
		if opts.Public {
			plans, err = s.Backend.PublicPlans(ctx)
		} else {
			plans, err = s.Backend.Plans(ctx, opts.IncludeInactive)
		}
		if err != nil {
			s.listState.Fail(seq, err.Error())
			return nil, err
		}
		if s.listState.Complete(seq, params) {
			s.setList(plans)
		}
		return plans, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Plan), nil
}

// ByID returns one plan. Distinct ids are deduplicated independently and may
// be in flight at the same time.
func (s *PlanService) ByID(ctx context.Context, id string, force bool) (models.Plan, error) {
	e := s.planEntry(id)
	if !force && e.state.IsLoaded(id) {
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.plan, nil
	}
	v, err := s.Loads.Do(ctx, "plan:"+id, force, func(ctx context.Context) (interface{}, error) {
		seq := e.state.Begin()
		plan, err := s.Backend.PlanByID(ctx, id)
		if errors.Is(err, models.ErrNoRecord) {
			err = models.ErrPlanNotFound
		}
		if err != nil {
			e.state.Fail(seq, err.Error())
			return nil, err
		}
		if e.state.Complete(seq, id) {
			e.mu.Lock()
			e.plan = plan
			e.mu.Unlock()
		}
		return plan, nil
	})
	if err != nil {
		return models.Plan{}, err
	}
	return v.(models.Plan), nil
}

// Create proxies an admin plan creation and invalidates the cached list.
func (s *PlanService) Create(ctx context.Context, in models.PlanInput) (models.Plan, error) {
	plan, err := s.Backend.CreatePlan(ctx, in)
	if err != nil {
		return models.Plan{}, err
	}
	s.invalidate(plan.ID)
	return plan, nil
}

// Update proxies an admin plan update and invalidates affected caches.
func (s *PlanService) Update(ctx context.Context, id string, in models.PlanInput) (models.Plan, error) {
	plan, err := s.Backend.UpdatePlan(ctx, id, in)
	if errors.Is(err, models.ErrNoRecord) {
		return models.Plan{}, models.ErrPlanNotFound
	}
	if err != nil {
		return models.Plan{}, err
	}
	s.invalidate(id)
	return plan, nil
}

// Delete proxies an admin plan deletion and invalidates affected caches.
func (s *PlanService) Delete(ctx context.Context, id string) error {
	if err := s.Backend.DeletePlan(ctx, id); err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			return models.ErrPlanNotFound
		}
		return err
	}
	s.invalidate(id)
	return nil
}

// Reset drops all cached plan data.
func (s *PlanService) Reset() {
	s.listState.Reset()
	s.listMu.Lock()
	s.list = nil
	s.listMu.Unlock()
	s.byIDMu.Lock()
	s.byID = nil
	s.byIDMu.Unlock()
}

func (s *PlanService) planEntry(id string) *planEntry {
	s.byIDMu.Lock()
	defer s.byIDMu.Unlock()
	if s.byID == nil {
		s.byID = make(map[string]*planEntry)
	}
	e, ok := s.byID[id]
	if !ok {
		e = &planEntry{}
		s.byID[id] = e
	}
	return e
}

func (s *PlanService) cachedList() []models.Plan {
	s.listMu.Lock()
	defer s.listMu.Unlock()
	out := make([]models.Plan, len(s.list))
	copy(out, s.list)
	return out
}

func (s *PlanService) setList(plans []models.Plan) {
	s.listMu.Lock()
	s.list = plans
	s.listMu.Unlock()
}

func (s *PlanService) invalidate(id string) {
	s.listState.Reset()
	if id == "" {
		return
	}
	s.byIDMu.Lock()
	delete(s.byID, id)
	s.byIDMu.Unlock()
}
