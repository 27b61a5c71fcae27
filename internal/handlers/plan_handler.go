package handlers

import (
	"encoding/json"
	"net/http"

	"brandoraBack/internal/models"
	"brandoraBack/internal/services"
)

type PlanHandler struct {
	Service *services.PlanService
}

// GetPlans lists plans for authenticated users. includeInactive=true is
// honoured for admins only.
func (h *PlanHandler) GetPlans(w http.ResponseWriter, r *http.Request) {
	role, _ := r.Context().Value("role").(string)
	opts := services.PlanListOptions{
		Force:           forceReload(r),
		IncludeInactive: r.URL.Query().Get("includeInactive") == "true" && role == models.RoleAdmin,
	}
	plans, err := h.Service.List(r.Context(), opts)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

// GetPublicPlans is the unauthenticated pricing-page fallback.
func (h *PlanHandler) GetPublicPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Service.List(r.Context(), services.PlanListOptions{
		Force:  forceReload(r),
		Public: true,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

func (h *PlanHandler) GetPlanByID(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid plan id")
		return
	}
	plan, err := h.Service.ByID(r.Context(), id, forceReload(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// GetPlanFeatures returns the merged display feature list for a plan.
func (h *PlanHandler) GetPlanFeatures(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid plan id")
		return
	}
	plan, err := h.Service.ByID(r.Context(), id, forceReload(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"plan_id":  plan.ID,
		"features": services.FormatPlanFeatures(plan),
	})
}

func (h *PlanHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var in models.PlanInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	plan, err := h.Service.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func (h *PlanHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid plan id")
		return
	}
	var in models.PlanInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	plan, err := h.Service.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *PlanHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid plan id")
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
