package handler

import (
	"net/http"

	"github.com/neighborly/backend/internal/model"
	"github.com/neighborly/backend/internal/service"
	"github.com/neighborly/backend/pkg/auth"
)

// VendorHandler handles vendor directory endpoints.
type VendorHandler struct {
	vendorSvc service.VendorService
}

// NewVendorHandler creates a VendorHandler.
func NewVendorHandler(vendorSvc service.VendorService) *VendorHandler {
	return &VendorHandler{vendorSvc: vendorSvc}
}

// List handles GET /api/vendors. Admins may pass include_hidden=true.
func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 50, 200)
	includeHidden := r.URL.Query().Get("include_hidden") == "true" && auth.IsAdminFromContext(r.Context())

	vendors, err := h.vendorSvc.List(r.Context(), r.URL.Query().Get("category"), limit, offset, includeHidden)
	if err != nil {
		writeServiceError(w, r, err, "list_failed")
		return
	}
	if vendors == nil {
		vendors = []*model.Vendor{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"vendors": vendors})
}

// Get handles GET /api/vendors/{id}.
func (h *VendorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	v, err := h.vendorSvc.Get(r.Context(), id, auth.IsAdminFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err, "get_failed")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// Create handles POST /api/vendors. Any signed-in resident may add a vendor.
func (h *VendorHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req service.CreateVendorInput
	if !decodeJSON(w, r, &req) {
		return
	}

	v, err := h.vendorSvc.Create(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err, "create_failed")
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

type hiddenRequest struct {
	Hidden bool `json:"hidden"`
}

// SetHidden handles PATCH /api/admin/vendors/{id}/hidden (admin-only).
func (h *VendorHandler) SetHidden(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req hiddenRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.vendorSvc.SetHidden(r.Context(), id, req.Hidden); err != nil {
		writeServiceError(w, r, err, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
