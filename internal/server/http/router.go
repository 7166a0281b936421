package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/and161185/zk-journal/internal/metrics"
	"github.com/and161185/zk-journal/internal/service"
)

// Deps configures the router. Gatherer and Limiter are optional.
type Deps struct {
	Auth     service.AuthService
	Log      *zap.Logger
	Limiter  *IPRateLimiter
	Gatherer prometheus.Gatherer
	Timeout  time.Duration
	// TrustedProxies may set forwarding headers; empty trusts none.
	TrustedProxies []net.IPNet
	// Ready reports dependency health for /healthz; nil means always ready.
	Ready func(ctx context.Context) error
}

// NewRouter builds the HTTP API.
//
// Middleware order: RequestID → RealIP(trusted proxies) → Logging → Recover → RateLimit → Timeout.
// /healthz and /metrics sit outside the rate limit.
func NewRouter(d Deps) http.Handler {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	h := &handler{auth: d.Auth}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RealIP(d.TrustedProxies))
	r.Use(Logging(d.Log))
	r.Use(Recover(d.Log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if d.Ready != nil {
			if err := d.Ready(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(d.Gatherer))
	}

	r.Group(func(r chi.Router) {
		if d.Limiter != nil {
			r.Use(d.Limiter.Middleware)
		}
		if d.Timeout > 0 {
			r.Use(middleware.Timeout(d.Timeout))
		}

		r.Route("/v1/auth", func(r chi.Router) {
			r.Post("/register/start", h.registerStart)
			r.Post("/register/finish", h.registerFinish)
			r.Post("/login/start", h.loginStart)
			r.Post("/login/finish", h.loginFinish)
			r.Post("/refresh", h.refresh)

			r.Group(func(r chi.Router) {
				r.Use(Bearer(d.Auth))
				r.Post("/reregister/start", h.reRegisterStart)
				r.Post("/reregister/finish", h.reRegisterFinish)
			})
		})
		r.With(Bearer(d.Auth)).Delete("/v1/account", h.deleteAccount)
	})
	return r
}
