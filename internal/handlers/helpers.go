package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"brandoraBack/internal/backend"
	"brandoraBack/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeServiceError maps service errors to HTTP responses. Backend error
// payloads pass through verbatim, both message and status.
func writeServiceError(w http.ResponseWriter, err error) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.StatusCode
		if status < 400 {
			status = http.StatusBadGateway
		}
		writeError(w, status, apiErr.Error())
		return
	}
	switch {
	case errors.Is(err, models.ErrNoRecord),
		errors.Is(err, models.ErrPlanNotFound),
		errors.Is(err, models.ErrPackageNotFound),
		errors.Is(err, models.ErrManifestNotFound),
		errors.Is(err, models.ErrJobNotFound),
		errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrDraftNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrMissingField),
		errors.Is(err, models.ErrInvalidDomainName):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrDuplicatePendingOrder),
		errors.Is(err, models.ErrOrderNotCancellable):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrForbidden),
		errors.Is(err, models.ErrInvalidAPIKey):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func userIDFrom(r *http.Request) (int, bool) {
	id, ok := r.Context().Value("user_id").(int)
	return id, ok
}

// forceReload reads the query flag that bypasses the loader's join and
// already-loaded short-circuits.
func forceReload(r *http.Request) bool {
	return r.URL.Query().Get("forceReload") == "true"
}
