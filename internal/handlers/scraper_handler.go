package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"brandoraBack/internal/models"
	"brandoraBack/internal/services"
)

const maxSnapshotBytes = 8 << 20 // 8 MB

type ScraperHandler struct {
	Service *services.ScraperService
}

func (h *ScraperHandler) CreateManifest(w http.ResponseWriter, r *http.Request) {
	var m models.Manifest
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := h.Service.CreateManifest(r.Context(), m)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ScraperHandler) GetManifests(w http.ResponseWriter, r *http.Request) {
	manifests, err := h.Service.ListManifests(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if manifests == nil {
		manifests = []models.Manifest{}
	}
	writeJSON(w, http.StatusOK, manifests)
}

func (h *ScraperHandler) GetManifestByID(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid manifest id")
		return
	}
	manifest, err := h.Service.GetManifest(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, manifest)
}

func (h *ScraperHandler) UpdateManifest(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid manifest id")
		return
	}
	var m models.Manifest
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m.ID = id
	updated, err := h.Service.UpdateManifest(r.Context(), m)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ScraperHandler) DeleteManifest(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid manifest id")
		return
	}
	if err := h.Service.DeleteManifest(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TriggerJob starts a scrape run for a manifest.
func (h *ScraperHandler) TriggerJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not authorized")
		return
	}
	manifestID := r.URL.Query().Get(":id")
	if manifestID == "" {
		writeError(w, http.StatusBadRequest, "invalid manifest id")
		return
	}
	job, err := h.Service.TriggerJob(r.Context(), manifestID, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, job)
}

func (h *ScraperHandler) GetJobs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = l
	}
	jobs, err := h.Service.ListJobs(r.Context(), r.URL.Query().Get("manifestId"), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if jobs == nil {
		jobs = []models.ScrapeJob{}
	}
	writeJSON(w, http.StatusOK, jobs)
}

// ReportJobResult receives a scraper agent's result. Authenticated with an
// agent API key, not a console JWT.
func (h *ScraperHandler) ReportJobResult(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.VerifyAPIKey(r.Context(), r.Header.Get("X-API-Key")); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid api key")
		return
	}
	jobID := r.URL.Query().Get(":id")
	if jobID == "" {
		writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	var req struct {
		Error string `json:"error,omitempty"`
		Body  string `json:"body,omitempty"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxSnapshotBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	job, err := h.Service.CompleteJob(r.Context(), jobID, []byte(req.Body), req.Error)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *ScraperHandler) CreateAPIKey(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Label string `json:"label"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	plaintext, key, err := h.Service.IssueAPIKey(r.Context(), req.Label)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"key":        plaintext,
		"id":         key.ID,
		"label":      key.Label,
		"created_at": key.CreatedAt,
	})
}

func (h *ScraperHandler) GetAPIKeys(w http.ResponseWriter, r *http.Request) {
	keys, err := h.Service.ListAPIKeys(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if keys == nil {
		keys = []models.APIKey{}
	}
	writeJSON(w, http.StatusOK, keys)
}

func (h *ScraperHandler) RevokeAPIKey(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid key id")
		return
	}
	if err := h.Service.RevokeAPIKey(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
