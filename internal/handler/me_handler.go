package handler

import (
	"net/http"

	"github.com/neighborly/backend/internal/service"
	"github.com/neighborly/backend/pkg/auth"
)

// MeHandler handles the signed-in user's own household.
type MeHandler struct {
	householdSvc service.HouseholdService
}

// NewMeHandler creates a MeHandler.
func NewMeHandler(householdSvc service.HouseholdService) *MeHandler {
	return &MeHandler{householdSvc: householdSvc}
}

type addressRequest struct {
	Address string `json:"address"`
}

// VerifyAddress handles PUT /api/me/address.
func (h *MeHandler) VerifyAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req addressRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	hh, err := h.householdSvc.VerifyAddress(r.Context(), userID, req.Address)
	if err != nil {
		writeServiceError(w, r, err, "verify_failed")
		return
	}
	writeJSON(w, http.StatusOK, hh)
}

// Household handles GET /api/me/household.
func (h *MeHandler) Household(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	hh, err := h.householdSvc.ForUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "get_failed")
		return
	}
	writeJSON(w, http.StatusOK, hh)
}
