package handlers

import (
	"encoding/json"
	"net/http"

	"brandoraBack/internal/repositories"
)

type NotificationHandler struct {
	Tokens *repositories.DeviceTokenRepository
}

// RegisterToken stores the caller's FCM device token for order-expiry pushes.
func (h *NotificationHandler) RegisterToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not authorized")
		return
	}
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}
	if err := h.Tokens.Register(r.Context(), userID, req.Token); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
