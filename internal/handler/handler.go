package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/safepsy/backend/internal/metrics"
	"github.com/safepsy/backend/internal/repository"
	"github.com/safepsy/backend/internal/validation"
)

// Handler serves the probes and cross-cutting middleware that need shared state.
type Handler struct {
	db          repository.DB
	frontendURL string
}

func New(db repository.DB, frontendURL string) *Handler {
	return &Handler{db: db, frontendURL: frontendURL}
}

func (h *Handler) CORS(next http.Handler) http.Handler {
	if h.frontendURL == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.frontendURL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// apiResponse is the body of every lead endpoint response.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

const (
	msgInvalidBody  = "Invalid request body"
	msgBodyTooLarge = "Request body too large"
	msgServerError  = "Something went wrong. Please try again later."
	msgRateLimited  = "Too many requests. Please try again later."
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}

func writeResult(w http.ResponseWriter, status int, success bool, message string) {
	writeJSON(w, status, apiResponse{Success: success, Message: message})
}

// decodeJSON decodes the request body into v, writing a 400 (or 413 when the
// body exceeds the MaxBodySize limit) and returning false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeResult(w, http.StatusRequestEntityTooLarge, false, msgBodyTooLarge)
		return false
	}
	writeResult(w, http.StatusBadRequest, false, msgInvalidBody)
	return false
}

// respondSubmission maps a service result onto the response taxonomy:
// validation errors are 400 with their message, anything else is a generic 500.
func respondSubmission(w http.ResponseWriter, m *metrics.Metrics, kind string, err error, successMsg string) {
	var verr *validation.Error
	switch {
	case err == nil:
		m.Submission(kind, metrics.OutcomeSuccess)
		writeResult(w, http.StatusOK, true, successMsg)
	case errors.As(err, &verr):
		m.Submission(kind, metrics.OutcomeInvalid)
		writeResult(w, http.StatusBadRequest, false, verr.Message)
	default:
		// The service has already logged the detail.
		m.Submission(kind, metrics.OutcomeError)
		writeResult(w, http.StatusInternalServerError, false, msgServerError)
	}
}
