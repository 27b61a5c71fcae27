package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"brandoraBack/internal/models"
	"brandoraBack/internal/services"
)

type CreditPackageHandler struct {
	Service *services.CreditPackageService
	Orders  *services.OrderService
}

func (h *CreditPackageHandler) GetPackages(w http.ResponseWriter, r *http.Request) {
	packs, err := h.Service.List(r.Context(), forceReload(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, packs)
}

// InitiateOrder starts a credit package purchase via the order pipeline.
func (h *CreditPackageHandler) InitiateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not authorized")
		return
	}
	var req struct {
		PackageID string `json:"packageId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PackageID == "" {
		writeError(w, http.StatusBadRequest, "packageId is required")
		return
	}
	order, err := h.Orders.InitiateCreditOrder(r.Context(), userID, req.PackageID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, viewOf(order, time.Now()))
}

func (h *CreditPackageHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var in models.CreditPackageInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	pack, err := h.Service.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pack)
}

func (h *CreditPackageHandler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid package id")
		return
	}
	var in models.CreditPackageInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	pack, err := h.Service.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pack)
}

func (h *CreditPackageHandler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid package id")
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
