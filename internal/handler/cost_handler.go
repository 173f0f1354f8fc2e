package handler

import (
	"net/http"

	"github.com/neighborly/backend/internal/costmodel"
	"github.com/neighborly/backend/internal/model"
	"github.com/neighborly/backend/internal/service"
	"github.com/neighborly/backend/pkg/auth"
)

// CostHandler serves cost forms, submissions and the public cost views.
type CostHandler struct {
	costSvc service.CostService
}

// NewCostHandler creates a CostHandler.
func NewCostHandler(costSvc service.CostService) *CostHandler {
	return &CostHandler{costSvc: costSvc}
}

func userIdentity(r *http.Request) (model.Identity, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	return model.Identity{UserID: userID}, ok
}

func previewIdentity(r *http.Request) (model.Identity, bool) {
	sid, ok := auth.SessionIDFromContext(r.Context())
	return model.Identity{SessionID: sid}, ok
}

func writeAuthRequired(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, errorBody{
		Error:   costmodel.ErrAuthRequired.Code,
		Message: costmodel.ErrAuthRequired.Message,
	})
}

// Form handles GET /api/vendors/{id}/costs/form.
// Signed-out visitors get the blank template.
func (h *CostHandler) Form(w http.ResponseWriter, r *http.Request) {
	identity, _ := userIdentity(r)
	h.form(w, r, identity)
}

// PreviewForm handles GET /api/preview/vendors/{id}/costs/form.
func (h *CostHandler) PreviewForm(w http.ResponseWriter, r *http.Request) {
	identity, _ := previewIdentity(r)
	h.form(w, r, identity)
}

func (h *CostHandler) form(w http.ResponseWriter, r *http.Request, identity model.Identity) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	form, err := h.costSvc.Form(r.Context(), id, identity)
	if err != nil {
		writeServiceError(w, r, err, "form_failed")
		return
	}
	writeJSON(w, http.StatusOK, form)
}

// Submit handles POST /api/vendors/{id}/costs.
func (h *CostHandler) Submit(w http.ResponseWriter, r *http.Request) {
	identity, ok := userIdentity(r)
	if !ok {
		writeAuthRequired(w)
		return
	}
	h.submit(w, r, identity)
}

// PreviewSubmit handles POST /api/preview/vendors/{id}/costs.
func (h *CostHandler) PreviewSubmit(w http.ResponseWriter, r *http.Request) {
	identity, ok := previewIdentity(r)
	if !ok {
		writeAuthRequired(w)
		return
	}
	h.submit(w, r, identity)
}

func (h *CostHandler) submit(w http.ResponseWriter, r *http.Request, identity model.Identity) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req service.SubmitInput
	if !decodeJSON(w, r, &req) {
		return
	}

	costs, err := h.costSvc.Submit(r.Context(), id, identity, req)
	if err != nil {
		writeServiceError(w, r, err, "submit_failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"costs": costs})
}

// VendorCosts handles GET /api/vendors/{id}/costs.
func (h *CostHandler) VendorCosts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	costs, err := h.costSvc.ListVendorCosts(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "list_failed")
		return
	}
	if costs == nil {
		costs = []*model.Cost{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"costs": costs})
}

// VendorStats handles GET /api/vendors/{id}/costs/stats.
func (h *CostHandler) VendorStats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	stats, err := h.costSvc.VendorStats(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, "stats_failed")
		return
	}
	if stats == nil {
		stats = []*model.VendorCostStat{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": stats})
}

// MyCosts handles GET /api/me/costs.
func (h *CostHandler) MyCosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	costs, err := h.costSvc.MyCosts(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "list_failed")
		return
	}
	if costs == nil {
		costs = []*model.Cost{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"costs": costs})
}
