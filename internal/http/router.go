// Package httpapi wires the public HTTP surface. Handlers stay thin and
// delegate to domain services; transport concerns live in the shared
// middleware chain.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"curbo/internal/platform/metrics"
	"curbo/internal/platform/middleware"
	policyhandler "curbo/internal/policy/handler"
	recallhandler "curbo/internal/recall/handler"
	verificationhandler "curbo/internal/verification/handler"
	"curbo/pkg/platform/httputil"
)

// Deps collects everything the router mounts.
type Deps struct {
	Logger       *slog.Logger
	JWTValidator middleware.JWTValidator
	HTTPMetrics  *metrics.HTTP
	Recalls      recallhandler.Service
	Policies     policyhandler.Service
	Verification verificationhandler.Service
}

// NewRouter builds the chi router with the shared middleware chain and all
// public endpoints.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	if deps.HTTPMetrics != nil {
		r.Use(deps.HTTPMetrics.Middleware)
	}
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.OptionalAuth(deps.JWTValidator, deps.Logger))

	r.Get("/healthz", handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	recallhandler.New(deps.Recalls, deps.Logger).Register(r)
	policyhandler.New(deps.Policies, deps.Logger, deps.JWTValidator).Register(r)
	verificationhandler.New(deps.Verification, deps.Logger, deps.JWTValidator).Register(r)

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
