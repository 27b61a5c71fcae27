package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"brandoraBack/internal/backend"
	"brandoraBack/internal/loader"
	"brandoraBack/internal/models"
)

// OrderService manages pending payment orders. Pending orders change
// server-side at any moment (payment completion, expiry), so there is no
// already-loaded short-circuit: every call that does not join an in-flight
// fetch goes to the backend.
type OrderService struct {
	Backend *backend.Client
	Loads   *loader.Group

	mu      sync.Mutex
	entries map[int]*orderEntry
}

type orderEntry struct {
	state    loader.State
	mu       sync.Mutex
	orders   []models.Order
	notified map[string]bool // free-plan activations already surfaced
}

func (s *OrderService) entry(userID int) *orderEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries == nil {
		s.entries = make(map[int]*orderEntry)
	}
	e, ok := s.entries[userID]
	if !ok {
		e = &orderEntry{notified: make(map[string]bool)}
		s.entries[userID] = e
	}
	return e
}

// Pending fetches the user's pending orders. Concurrent callers join a single
// request; a forced call issues its own regardless.
func (s *OrderService) Pending(ctx context.Context, userID int, force bool) ([]models.Order, error) {
	e := s.entry(userID)
	key := fmt.Sprintf("order:pending:%d", userID)
	v, err := s.Loads.Do(ctx, key, force, func(ctx context.Context) (interface{}, error) {
		seq := e.state.Begin()
		orders, err := s.Backend.PendingOrders(ctx)
		if err != nil {
			e.state.Fail(seq, err.Error())
			return nil, err
		}
		if e.state.Complete(seq, "") {
			e.mu.Lock()
			e.orders = orders
			e.mu.Unlock()
		}
		return orders, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Order), nil
}

// Actionable filters a pending listing down to orders that still require a
// payment action: free-plan activations and already-expired orders are
// dropped.
func Actionable(orders []models.Order, now time.Time) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.IsFreePlanActivation() || o.IsExpired(now) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// TakeActivationNotices returns free-plan activations that have not been
// surfaced to the user yet, marking them so each appears exactly once.
func (s *OrderService) TakeActivationNotices(userID int) []models.Order {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []models.Order
	for _, o := range e.orders {
		if !o.IsFreePlanActivation() || o.SubscriptionID == "" {
			continue
		}
		if e.notified[o.SubscriptionID] {
			continue
		}
		e.notified[o.SubscriptionID] = true
		out = append(out, o)
	}
	return out
}

// Initiate starts a plan purchase. A pending order for the same plan in the
// cached snapshot is a business-rule conflict and never reaches the backend.
func (s *OrderService) Initiate(ctx context.Context, userID int, planID string) (models.Order, error) {
	e := s.entry(userID)
	e.mu.Lock()
	for _, o := range e.orders {
		if o.PlanID == planID && !o.IsFreePlanActivation() {
			e.mu.Unlock()
			return models.Order{}, models.ErrDuplicatePendingOrder
		}
	}
	e.mu.Unlock()

	order, err := s.Backend.InitiateOrder(ctx, planID)
	if err != nil {
		return models.Order{}, err
	}
	s.patch(userID, order)
	return order, nil
}

// InitiateCreditOrder starts a credit package purchase.
func (s *OrderService) InitiateCreditOrder(ctx context.Context, userID int, packageID string) (models.Order, error) {
	order, err := s.Backend.InitiateCreditOrder(ctx, packageID)
	if err != nil {
		return models.Order{}, err
	}
	s.patch(userID, order)
	return order, nil
}

// Cancel cancels a pending order and removes it from the cached snapshot.
func (s *OrderService) Cancel(ctx context.Context, userID int, orderID string) error {
	order, ok := s.find(userID, orderID)
	if ok && !order.IsCancellable() {
		return models.ErrOrderNotCancellable
	}
	if err := s.Backend.CancelOrder(ctx, orderID); err != nil {
		return err
	}
	s.remove(userID, orderID)
	return nil
}

// RetryPayment re-enters the payment flow for a pending order.
func (s *OrderService) RetryPayment(ctx context.Context, userID int, orderID string) (models.Order, error) {
	order, err := s.Backend.RetryPayment(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}
	s.patch(userID, order)
	return order, nil
}

// Checkout returns the payment provider checkout URL for an order.
func (s *OrderService) Checkout(ctx context.Context, orderID string) (string, error) {
	return s.Backend.CreateCheckout(ctx, orderID)
}

// Snapshot returns the cached pending orders without touching the backend.
// Used by the expiry cleaner.
func (s *OrderService) Snapshot(userID int) []models.Order {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Order, len(e.orders))
	copy(out, e.orders)
	return out
}

// PruneExpired drops orders whose expiry has passed from the cached snapshot
// and returns the number removed. An expired order must not keep feeding the
// duplicate-plan conflict check in Initiate.
func (s *OrderService) PruneExpired(userID int, now time.Time) int {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := e.orders[:0]
	for _, o := range e.orders {
		if o.IsExpired(now) {
			continue
		}
		kept = append(kept, o)
	}
	removed := len(e.orders) - len(kept)
	e.orders = kept
	return removed
}

// CachedUserIDs lists users with a cached pending-order snapshot.
func (s *OrderService) CachedUserIDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	return ids
}

// Reset drops the user's cached orders, e.g. on logout.
func (s *OrderService) Reset(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
}

func (s *OrderService) find(userID int, orderID string) (models.Order, bool) {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, o := range e.orders {
		if o.OrderID == orderID {
			return o, true
		}
	}
	return models.Order{}, false
}

func (s *OrderService) patch(userID int, order models.Order) {
	if order.OrderID == "" {
		return
	}
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, o := range e.orders {
		if o.OrderID == order.OrderID {
			e.orders[i] = order
			return
		}
	}
	e.orders = append(e.orders, order)
}

func (s *OrderService) remove(userID int, orderID string) {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, o := range e.orders {
		if o.OrderID == orderID {
			e.orders = append(e.orders[:i], e.orders[i+1:]...)
			return
		}
	}
}
