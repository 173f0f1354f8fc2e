package handler

import (
	"net/http"

	"github.com/neighborly/backend/internal/model"
	"github.com/neighborly/backend/internal/service"
	"github.com/neighborly/backend/pkg/auth"
)

// AdminUserHandler handles admin user management endpoints.
type AdminUserHandler struct {
	adminSvc service.AdminUserService
}

// NewAdminUserHandler creates an AdminUserHandler.
func NewAdminUserHandler(adminSvc service.AdminUserService) *AdminUserHandler {
	return &AdminUserHandler{adminSvc: adminSvc}
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := auth.UserIDFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	if !auth.IsAdminFromContext(r.Context()) {
		writeError(w, http.StatusForbidden, "forbidden")
		return false
	}
	return true
}

// List handles GET /api/admin/users (admin-only).
func (h *AdminUserHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	limit, offset := pagination(r, 50, 200)
	users, err := h.adminSvc.ListUsers(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, r, err, "list_failed")
		return
	}
	if users == nil {
		users = []*model.User{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

// Get handles GET /api/admin/users/{id} (admin-only).
func (h *AdminUserHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user, err := h.adminSvc.GetUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "get_failed")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type suspendRequest struct {
	Suspended bool `json:"suspended"`
}

// Suspend handles PATCH /api/admin/users/{id}/suspend (admin-only).
func (h *AdminUserHandler) Suspend(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req suspendRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.adminSvc.SuspendUser(r.Context(), id, req.Suspended); err != nil {
		writeServiceError(w, r, err, "suspend_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
