package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/neighborly/backend/internal/model"
	"github.com/neighborly/backend/internal/service"
	"github.com/neighborly/backend/pkg/auth"
	"github.com/shopspring/decimal"
)

// AdminCostHandler handles cost moderation endpoints.
type AdminCostHandler struct {
	adminSvc service.AdminCostService
}

// NewAdminCostHandler creates an AdminCostHandler.
func NewAdminCostHandler(adminSvc service.AdminCostService) *AdminCostHandler {
	return &AdminCostHandler{adminSvc: adminSvc}
}

// List handles GET /api/admin/costs?vendor_id=...&include_deleted=true (admin-only).
func (h *AdminCostHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	q := r.URL.Query()
	vendorID := q.Get("vendor_id")
	if vendorID != "" {
		if _, err := uuid.Parse(vendorID); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_vendor")
			return
		}
	}
	costs, err := h.adminSvc.List(r.Context(), vendorID, q.Get("include_deleted") == "true")
	if err != nil {
		writeServiceError(w, r, err, "list_failed")
		return
	}
	if costs == nil {
		costs = []*model.Cost{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"costs": costs})
}

// Delete handles DELETE /api/admin/costs/{id} (admin-only).
func (h *AdminCostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	adminID, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.adminSvc.SoftDelete(r.Context(), id, adminID); err != nil {
		writeServiceError(w, r, err, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Restore handles POST /api/admin/costs/{id}/restore (admin-only).
func (h *AdminCostHandler) Restore(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.adminSvc.Restore(r.Context(), id); err != nil {
		writeServiceError(w, r, err, "restore_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// overrideRequest carries the corrected amount. A null amount clears the override.
type overrideRequest struct {
	Amount *decimal.Decimal `json:"amount"`
	Note   string           `json:"note"`
}

// Override handles PUT /api/admin/costs/{id}/override (admin-only).
func (h *AdminCostHandler) Override(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	adminID, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req overrideRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.adminSvc.Override(r.Context(), id, adminID, req.Amount, req.Note)
	if err != nil {
		writeServiceError(w, r, err, "override_failed")
		return
	}
	writeJSON(w, http.StatusOK, c)
}
