package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"curbo/internal/platform/middleware"
	"curbo/internal/policy"
	dErrors "curbo/pkg/domain-errors"
	"curbo/pkg/platform/httputil"
)

// Service defines the interface for dealer policy operations.
type Service interface {
	Get(ctx context.Context, dealerID string) (*policy.DealerPolicy, error)
	Save(ctx context.Context, dealerID string, p policy.DealerPolicy) (*policy.DealerPolicy, error)
}

// Handler serves the dealer policy read/write endpoints. The dealer identity
// comes from the bearer token, never from the request body, so a dealer can
// only ever write their own policy.
type Handler struct {
	logger       *slog.Logger
	policies     Service
	jwtValidator middleware.JWTValidator
}

func New(policies Service, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		policies:     policies,
		jwtValidator: jwtValidator,
	}
}

// Register registers the dealer policy routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(15 * time.Second))
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Get("/dealers/policy", h.handleGetPolicy)
		r.Put("/dealers/policy", h.handleSavePolicy)
	})
}

func (h *Handler) handleGetPolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dealerID := middleware.GetUserID(ctx)

	p, err := h.policies.Get(ctx, dealerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load dealer policy",
			"request_id", middleware.GetRequestID(ctx),
			"dealer_id", dealerID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) handleSavePolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	dealerID := middleware.GetUserID(ctx)

	var req policy.DealerPolicy
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid dealer policy request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	saved, err := h.policies.Save(ctx, dealerID, req)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeInvalidInput) || dErrors.Is(err, dErrors.CodeBadRequest) {
			h.logger.WarnContext(ctx, "dealer policy rejected",
				"request_id", requestID,
				"dealer_id", dealerID,
				"error", err.Error(),
			)
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to save dealer policy",
			"request_id", requestID,
			"dealer_id", dealerID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to save dealer policy"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, saved)
}
