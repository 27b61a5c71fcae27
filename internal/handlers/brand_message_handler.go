package handlers

import (
	"encoding/json"
	"net/http"

	"brandoraBack/internal/models"
	"brandoraBack/internal/services"
)

type BrandMessageHandler struct {
	Service *services.BrandMessageService
}

// GetByProject lists the project's brand messages; same-project rereads are
// served from the cache, switching projects refetches.
func (h *BrandMessageHandler) GetByProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not authorized")
		return
	}
	projectID := r.URL.Query().Get("projectId")
	if projectID == "" {
		writeError(w, http.StatusBadRequest, "projectId is required")
		return
	}
	msgs, err := h.Service.ListByProject(r.Context(), userID, projectID, forceReload(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if msgs == nil {
		msgs = []models.BrandMessage{}
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (h *BrandMessageHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not authorized")
		return
	}
	var req models.GenerateBrandMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProjectID == "" || req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "projectId and prompt are required")
		return
	}
	msg, err := h.Service.Generate(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}
