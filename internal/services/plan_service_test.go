package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"brandoraBack/internal/backend"
	"brandoraBack/internal/loader"
	"brandoraBack/internal/models"
)

func newPlanService(t *testing.T, handler http.Handler) *PlanService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := backend.NewClient(srv.Client(), srv.URL)
	return &PlanService{Backend: client, Loads: &loader.Group{}}
}

func TestListCachedPerVariant(t *testing.T) {
	var calls int32
	svc := newPlanService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		json.NewEncoder(w).Encode([]models.Plan{{ID: "plan_basic"}})
	}))

	for i := 0; i < 3; i++ {
		plans, err := svc.List(context.Background(), PlanListOptions{})
		if err != nil {
			t.Fatalf("List() error: %v", err)
		}
		if len(plans) != 1 {
			t.Fatalf("unexpected plans: %+v", plans)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("backend called %d times, want 1", got)
	}

	// Asking for a different listing variant refetches even though the list is
	// already loaded.
	if _, err := svc.List(context.Background(), PlanListOptions{IncludeInactive: true}); err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("backend called %d times after variant switch, want 2", got)
	}
}

func TestEmptyListingCountsAsLoaded(t *testing.T) {
	var calls int32
	svc := newPlanService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		json.NewEncoder(w).Encode([]models.Plan{})
	}))

	for i := 0; i < 2; i++ {
		plans, err := svc.List(context.Background(), PlanListOptions{})
		if err != nil {
			t.Fatalf("List() error: %v", err)
		}
		if len(plans) != 0 {
			t.Fatalf("unexpected plans: %+v", plans)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("backend called %d times, want 1", got)
	}
}

func TestByIDCachesIndependently(t *testing.T) {
	var calls int32
	svc := newPlanService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		id := r.URL.Path[len("/plan/"):]
		json.NewEncoder(w).Encode(models.Plan{ID: id})
	}))

	for _, id := range []string{"plan_a", "plan_b", "plan_a"} {
		plan, err := svc.ByID(context.Background(), id, false)
		if err != nil {
			t.Fatalf("ByID(%s) error: %v", id, err)
		}
		if plan.ID != id {
			t.Fatalf("ByID(%s) = %+v", id, plan)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("backend called %d times, want 2", got)
	}
}

func TestByIDMissingPlan(t *testing.T) {
	svc := newPlanService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := svc.ByID(context.Background(), "plan_gone", false)
	if !errors.Is(err, models.ErrPlanNotFound) {
		t.Fatalf("ByID() error = %v, want ErrPlanNotFound", err)
	}
}

func TestAdminMutationsInvalidateCaches(t *testing.T) {
	var listCalls int32
	svc := newPlanService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/plan" {
			atomic.AddInt32(&listCalls, 1)
			json.NewEncoder(w).Encode([]models.Plan{{ID: "plan_basic"}})
			return
		}
		json.NewEncoder(w).Encode(models.Plan{ID: "plan_basic"})
	}))

	if _, err := svc.List(context.Background(), PlanListOptions{}); err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if _, err := svc.Update(context.Background(), "plan_basic", models.PlanInput{Name: "Basic"}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if _, err := svc.List(context.Background(), PlanListOptions{}); err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if got := atomic.LoadInt32(&listCalls); got != 2 {
		t.Fatalf("list fetched %d times, want 2 after invalidation", got)
	}
}
