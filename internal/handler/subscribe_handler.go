package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/safepsy/backend/internal/metrics"
	"github.com/safepsy/backend/internal/service"
	"github.com/safepsy/backend/internal/validation"
)

const msgSubscribed = "Thanks! We'll email you product updates."

// SubscribeHandler handles waitlist signups.
type SubscribeHandler struct {
	subscriptionService service.SubscriptionService
	metrics             *metrics.Metrics
}

func NewSubscribeHandler(subscriptionService service.SubscriptionService, m *metrics.Metrics) *SubscribeHandler {
	return &SubscribeHandler{subscriptionService: subscriptionService, metrics: m}
}

// subscribeRequest is the expected JSON body for POST /api/subscribe.
// consentGiven counts only when it is the JSON literal true.
type subscribeRequest struct {
	Email        string          `json:"email"`
	FullName     string          `json:"fullName"`
	Role         string          `json:"role"`
	ConsentGiven json.RawMessage `json:"consentGiven"`
}

// Submit handles POST /api/subscribe. Only email is required; a repeat
// submission for a stored email succeeds without changing it.
func (h *SubscribeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if !decodeJSON(w, r, &req) {
		h.metrics.Submission(metrics.KindSubscribe, metrics.OutcomeInvalid)
		return
	}

	in := validation.SubscriptionInput{
		Email:        req.Email,
		FullName:     req.FullName,
		Role:         req.Role,
		ConsentGiven: bytes.Equal(bytes.TrimSpace(req.ConsentGiven), []byte("true")),
	}
	err := h.subscriptionService.Subscribe(r.Context(), in, ClientIP(r))
	respondSubmission(w, h.metrics, metrics.KindSubscribe, err, msgSubscribed)
}
