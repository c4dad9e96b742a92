package handler

import (
	"net/http"

	"github.com/safepsy/backend/internal/metrics"
)

// Routes collects the handlers mounted by NewRouter.
type Routes struct {
	Handler      *Handler
	Contact      *ContactHandler
	Subscribe    *SubscribeHandler
	RateLimiter  *RateLimiter
	Metrics      *metrics.Metrics
	MaxBodyBytes int64
}

// NewRouter builds the full HTTP handler: lead endpoints behind the rate
// limiter and body cap, probes, metrics, and the global middleware chain.
func NewRouter(rt Routes) http.Handler {
	lead := func(fn http.HandlerFunc) http.Handler {
		return rt.RateLimiter.Middleware(MaxBodySize(rt.MaxBodyBytes)(fn))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", rt.Handler.Healthz)
	mux.HandleFunc("GET /readyz", rt.Handler.Readyz)
	mux.Handle("GET /metrics", rt.Metrics.Handler())
	mux.Handle("POST /api/contact", lead(rt.Contact.Submit))
	mux.Handle("POST /api/subscribe", lead(rt.Subscribe.Submit))

	return SecurityHeaders(rt.Handler.CORS(RequestLogger(Metrics(rt.Metrics)(mux))))
}
