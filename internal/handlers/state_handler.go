package handlers

import (
	"net/http"

	"brandoraBack/internal/services"
)

// StateHandler resets the per-user resource caches, mirroring the logout /
// explicit "reset state" action of the console.
type StateHandler struct {
	Subscriptions *services.SubscriptionService
	Orders        *services.OrderService
	BrandMessages *services.BrandMessageService
	Plans         *services.PlanService
}

func (h *StateHandler) ResetState(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not authorized")
		return
	}
	h.Subscriptions.Reset(userID)
	h.Orders.Reset(userID)
	h.BrandMessages.Reset(userID)
	w.WriteHeader(http.StatusNoContent)
}

// ResetAll additionally drops shared caches; admin only, wired behind the
// admin middleware chain.
func (h *StateHandler) ResetAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not authorized")
		return
	}
	h.Subscriptions.Reset(userID)
	h.Orders.Reset(userID)
	h.BrandMessages.Reset(userID)
	h.Plans.Reset()
	w.WriteHeader(http.StatusNoContent)
}
