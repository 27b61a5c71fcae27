package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"brandoraBack/internal/models"
	"brandoraBack/internal/services"
)

type OrderHandler struct {
	Service *services.OrderService
}

// orderView decorates an order with its derived urgency for the dashboard.
type orderView struct {
	models.Order
	Expired       bool                 `json:"expired"`
	ExpiringSoon  bool                 `json:"expiring_soon"`
	TimeRemaining models.TimeRemaining `json:"time_remaining"`
}

func viewOf(o models.Order, now time.Time) orderView {
	return orderView{
		Order:         o,
		Expired:       o.IsExpired(now),
		ExpiringSoon:  o.IsExpiringSoon(now),
		TimeRemaining: o.Remaining(now),
	}
}

// GetPending lists pending orders. view=actionable drops free-plan
// activations and expired orders, leaving only those requiring a payment
// action.
func (h *OrderHandler) GetPending(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not authorized")
		return
	}

	orders, err := h.Service.Pending(r.Context(), userID, forceReload(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	now := time.Now()
	if r.URL.Query().Get("view") == "actionable" {
		orders = services.Actionable(orders, now)
	}
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, viewOf(o, now))
	}
	writeJSON(w, http.StatusOK, views)
}

// GetActivationNotices returns free-plan activations not yet shown to the
// user; each is surfaced exactly once.
func (h *OrderHandler) GetActivationNotices(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not authorized")
		return
	}
	notices := h.Service.TakeActivationNotices(userID)
	if notices == nil {
		notices = []models.Order{}
	}
	writeJSON(w, http.StatusOK, notices)
}

func (h *OrderHandler) InitiateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not authorized")
		return
	}
	var req struct {
		PlanID string `json:"planId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlanID == "" {
		writeError(w, http.StatusBadRequest, "planId is required")
		return
	}
	order, err := h.Service.Initiate(r.Context(), userID, req.PlanID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewOf(order, time.Now()))
}

func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not authorized")
		return
	}
	orderID := r.URL.Query().Get(":id")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	if err := h.Service.Cancel(r.Context(), userID, orderID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrderHandler) RetryPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not authorized")
		return
	}
	orderID := r.URL.Query().Get(":id")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	order, err := h.Service.RetryPayment(r.Context(), userID, orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(order, time.Now()))
}

func (h *OrderHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get(":id")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	url, err := h.Service.Checkout(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"checkout_url": url})
}
