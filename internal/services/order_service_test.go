package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"brandoraBack/internal/backend"
	"brandoraBack/internal/loader"
	"brandoraBack/internal/models"
)

func newOrderService(t *testing.T, handler http.Handler) (*OrderService, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := backend.NewClient(srv.Client(), srv.URL)
	return &OrderService{Backend: client, Loads: &loader.Group{}}, srv
}

func TestPendingAlwaysRefetches(t *testing.T) {
	var calls int32
	svc, _ := newOrderService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/order/pending" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		atomic.AddInt32(&calls, 1)
		json.NewEncoder(w).Encode([]models.Order{{OrderID: "ord_1", PaymentRequired: true}})
	}))

	for i := 0; i < 3; i++ {
		orders, err := svc.Pending(context.Background(), 7, false)
		if err != nil {
			t.Fatalf("Pending() error: %v", err)
		}
		if len(orders) != 1 || orders[0].OrderID != "ord_1" {
			t.Fatalf("unexpected orders: %+v", orders)
		}
	}
	// Pending orders change server-side at any time, so sequential calls must
	// not be served from the cache.
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("backend called %d times, want 3", got)
	}
}

func TestInitiateRejectsDuplicatePlanWithoutNetworkCall(t *testing.T) {
	var initiateCalls int32
	svc, _ := newOrderService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/order/pending":
			json.NewEncoder(w).Encode([]models.Order{
				{OrderID: "ord_1", PlanID: "plan_pro", PaymentRequired: true},
			})
		case "/order/initiate":
			atomic.AddInt32(&initiateCalls, 1)
			json.NewEncoder(w).Encode(models.Order{OrderID: "ord_2", PlanID: "plan_max", PaymentRequired: true})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	if _, err := svc.Pending(context.Background(), 7, false); err != nil {
		t.Fatalf("Pending() error: %v", err)
	}

	_, err := svc.Initiate(context.Background(), 7, "plan_pro")
	if !errors.Is(err, models.ErrDuplicatePendingOrder) {
		t.Fatalf("Initiate() error = %v, want ErrDuplicatePendingOrder", err)
	}
	if got := atomic.LoadInt32(&initiateCalls); got != 0 {
		t.Fatalf("initiate endpoint called %d times, want 0", got)
	}

	// A different plan goes through and lands in the cached snapshot.
	order, err := svc.Initiate(context.Background(), 7, "plan_max")
	if err != nil {
		t.Fatalf("Initiate() error: %v", err)
	}
	if order.OrderID != "ord_2" {
		t.Fatalf("unexpected order %+v", order)
	}
	snap := svc.Snapshot(7)
	if len(snap) != 2 {
		t.Fatalf("snapshot has %d orders, want 2", len(snap))
	}
}

func TestCancelRejectsNonCancellableOrder(t *testing.T) {
	intent := "pi_1"
	var cancelCalls int32
	svc, _ := newOrderService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/order/pending":
			json.NewEncoder(w).Encode([]models.Order{
				{OrderID: "ord_1", PaymentRequired: true, PaymentIntentID: &intent, Status: models.OrderStatusProcessing},
			})
		default:
			atomic.AddInt32(&cancelCalls, 1)
			w.WriteHeader(http.StatusOK)
		}
	}))

	if _, err := svc.Pending(context.Background(), 7, false); err != nil {
		t.Fatalf("Pending() error: %v", err)
	}
	err := svc.Cancel(context.Background(), 7, "ord_1")
	if !errors.Is(err, models.ErrOrderNotCancellable) {
		t.Fatalf("Cancel() error = %v, want ErrOrderNotCancellable", err)
	}
	if got := atomic.LoadInt32(&cancelCalls); got != 0 {
		t.Fatalf("cancel endpoint called %d times, want 0", got)
	}
}

func TestPruneExpiredUnblocksReorder(t *testing.T) {
	expired := time.Now().Add(-time.Minute)
	svc, _ := newOrderService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/order/pending":
			json.NewEncoder(w).Encode([]models.Order{
				{OrderID: "ord_old", PlanID: "plan_pro", PaymentRequired: true, ExpiresAt: &expired},
			})
		case "/order/initiate":
			json.NewEncoder(w).Encode(models.Order{OrderID: "ord_new", PlanID: "plan_pro", PaymentRequired: true})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	if _, err := svc.Pending(context.Background(), 7, false); err != nil {
		t.Fatalf("Pending() error: %v", err)
	}

	// The stale snapshot still blocks a re-order of the same plan.
	if _, err := svc.Initiate(context.Background(), 7, "plan_pro"); !errors.Is(err, models.ErrDuplicatePendingOrder) {
		t.Fatalf("Initiate() error = %v, want ErrDuplicatePendingOrder", err)
	}

	if removed := svc.PruneExpired(7, time.Now()); removed != 1 {
		t.Fatalf("PruneExpired() removed %d orders, want 1", removed)
	}
	if snap := svc.Snapshot(7); len(snap) != 0 {
		t.Fatalf("expired order still cached: %+v", snap)
	}

	order, err := svc.Initiate(context.Background(), 7, "plan_pro")
	if err != nil {
		t.Fatalf("Initiate() after prune error: %v", err)
	}
	if order.OrderID != "ord_new" {
		t.Fatalf("unexpected order %+v", order)
	}
}

func TestActionableFiltersFreeAndExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(30 * time.Minute)

	orders := []models.Order{
		{SubscriptionID: "sub_free"},
		{OrderID: "ord_expired", PaymentRequired: true, ExpiresAt: &past},
		{OrderID: "ord_live", PaymentRequired: true, ExpiresAt: &future},
		{OrderID: "ord_no_expiry", PaymentRequired: true},
	}
	got := Actionable(orders, now)
	if len(got) != 2 {
		t.Fatalf("Actionable() returned %d orders, want 2", len(got))
	}
	if got[0].OrderID != "ord_live" || got[1].OrderID != "ord_no_expiry" {
		t.Fatalf("unexpected actionable orders: %+v", got)
	}
}

func TestActivationNoticesSurfaceOnce(t *testing.T) {
	svc, _ := newOrderService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Order{
			{SubscriptionID: "sub_1"},
			{OrderID: "ord_1", PaymentRequired: true},
		})
	}))

	if _, err := svc.Pending(context.Background(), 7, false); err != nil {
		t.Fatalf("Pending() error: %v", err)
	}

	first := svc.TakeActivationNotices(7)
	if len(first) != 1 || first[0].SubscriptionID != "sub_1" {
		t.Fatalf("unexpected notices: %+v", first)
	}
	if second := svc.TakeActivationNotices(7); len(second) != 0 {
		t.Fatalf("notice surfaced twice: %+v", second)
	}

	// Reloading the same snapshot must not resurface the notice.
	if _, err := svc.Pending(context.Background(), 7, true); err != nil {
		t.Fatalf("Pending() error: %v", err)
	}
	if third := svc.TakeActivationNotices(7); len(third) != 0 {
		t.Fatalf("notice resurfaced after reload: %+v", third)
	}
}
