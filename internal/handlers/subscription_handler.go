package handlers

import (
	"encoding/json"
	"net/http"

	"brandoraBack/internal/services"
)

type SubscriptionHandler struct {
	Service *services.SubscriptionService
}

// GetCurrent returns the authenticated user's subscription, served from the
// cache unless forceReload=true.
func (h *SubscriptionHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not authorized")
		return
	}

	sub, err := h.Service.Current(r.Context(), userID, forceReload(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !sub.HasSubscription() {
		writeJSON(w, http.StatusOK, map[string]interface{}{"has_subscription": false})
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// ChangePlan switches the user's subscription plan.
func (h *SubscriptionHandler) ChangePlan(w http.ResponseWriter, r *http.Request) {
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

	sub, err := h.Service.ChangePlan(r.Context(), userID, req.PlanID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// GetUsage returns the credit usage summary for the analytics panel.
func (h *SubscriptionHandler) GetUsage(w http.ResponseWriter, r *http.Request) {
	usage, err := h.Service.Usage(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, usage)
}
