package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/neighborly/backend/internal/costmodel"
	"github.com/neighborly/backend/internal/repository"
	"github.com/neighborly/backend/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

type errorBody struct {
	Error      string `json:"error"`
	Message    string `json:"message,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Retryable  bool   `json:"retryable,omitempty"`
}

var failureStatus = map[costmodel.FailureKind]int{
	costmodel.FailureValidation: http.StatusUnprocessableEntity,
	costmodel.FailureAddress:    http.StatusConflict,
	costmodel.FailureAuth:       http.StatusUnauthorized,
}

// writeServiceError translates a service error into a status and error code.
// Anything unrecognised is a 500 with fallback as its code, and is logged.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var unknownCategory *costmodel.UnknownCategoryError
	switch {
	case errors.As(err, &unknownCategory):
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:      costmodel.ErrUnknownCategory.Code,
			Message:    unknownCategory.Error(),
			Suggestion: string(unknownCategory.Suggestion),
		})
	case costmodel.KindOf(err) != "":
		var f *costmodel.Failure
		errors.As(err, &f)
		writeJSON(w, failureStatus[f.Kind], errorBody{Error: f.Code, Message: f.Message})
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, repository.ErrNotLive):
		writeError(w, http.StatusConflict, "invalid_state")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrInvalidVendor):
		writeError(w, http.StatusBadRequest, "invalid_vendor")
	case errors.Is(err, service.ErrInvalidAddress):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "invalid_address", Message: service.ErrInvalidAddress.Error()})
	case errors.Is(err, service.ErrInvalidOverride):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "invalid_override", Message: service.ErrInvalidOverride.Error()})
	case errors.Is(err, service.ErrSubmitInFlight):
		writeJSON(w, http.StatusConflict, errorBody{Error: "submit_in_flight", Message: service.ErrSubmitInFlight.Error(), Retryable: true})
	case errors.Is(err, service.ErrSubmitFailed):
		slog.ErrorContext(r.Context(), "cost submission failed", "error", err, "path", r.URL.Path)
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "submit_failed", Message: service.ErrSubmitFailed.Error(), Retryable: true})
	default:
		slog.ErrorContext(r.Context(), "request failed", "error", err, "method", r.Method, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

// pathID returns the canonical form of the {id} path value. Ids are UUIDs,
// so anything else cannot name a row and is answered with 404.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return "", false
	}
	return id.String(), true
}

// pagination reads limit and offset query parameters. Out-of-range values
// fall back to the defaults.
func pagination(r *http.Request, defaultLimit, maxLimit int) (limit, offset int) {
	limit = defaultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= maxLimit {
			limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// decodeJSON reads a JSON body of at most 64 KiB, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return false
	}
	return true
}
