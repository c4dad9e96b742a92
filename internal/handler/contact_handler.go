package handler

import (
	"net/http"

	"github.com/safepsy/backend/internal/metrics"
	"github.com/safepsy/backend/internal/service"
	"github.com/safepsy/backend/internal/validation"
)

const msgContactReceived = "Thank you for your message! We'll get back to you soon."

// ContactHandler handles contact form submissions.
type ContactHandler struct {
	contactService service.ContactService
	metrics        *metrics.Metrics
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService, m *metrics.Metrics) *ContactHandler {
	return &ContactHandler{contactService: contactService, metrics: m}
}

// Submit handles POST /api/contact.
// email, fullName, subject and message are all required.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req validation.ContactInput
	if !decodeJSON(w, r, &req) {
		h.metrics.Submission(metrics.KindContact, metrics.OutcomeInvalid)
		return
	}

	err := h.contactService.Submit(r.Context(), req, ClientIP(r))
	respondSubmission(w, h.metrics, metrics.KindContact, err, msgContactReceived)
}
