// Package handler exposes the verification bot trigger endpoint.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"curbo/internal/domain"
	"curbo/internal/platform/middleware"
	"curbo/internal/verification"
	dErrors "curbo/pkg/domain-errors"
	"curbo/pkg/platform/httputil"
)

// Service defines the verification bot operations.
type Service interface {
	RunForProfile(ctx context.Context, profileID string) ([]verification.AuditRecord, error)
	RunPending(ctx context.Context) (*verification.BatchResult, error)
}

// Handler serves POST /verification/run. With a profileId in the body the
// bot runs for that profile; without one it sweeps all pending profiles.
// Admin only.
type Handler struct {
	logger       *slog.Logger
	bot          Service
	jwtValidator middleware.JWTValidator
}

func New(bot Service, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		bot:          bot,
		jwtValidator: jwtValidator,
	}
}

// Register registers the verification routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		r.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		r.Post("/verification/run", h.handleRun)
	})
}

type runRequest struct {
	ProfileID string `json:"profileId"`
}

type runResponse struct {
	Records []verification.AuditRecord `json:"records"`
}

func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	if middleware.GetRole(ctx) != string(domain.RoleAdmin) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "admin role required"))
		return
	}

	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if req.ProfileID == "" {
		result, err := h.bot.RunPending(ctx)
		if err != nil {
			h.logger.ErrorContext(ctx, "verification batch failed",
				"request_id", requestID,
				"error", err.Error(),
			)
			httputil.WriteError(w, err)
			return
		}
		h.logger.InfoContext(ctx, "verification batch completed",
			"request_id", requestID,
			"processed", result.Processed,
			"flagged", result.Flagged,
			"failed", len(result.Failed),
		)
		httputil.WriteJSON(w, http.StatusOK, result)
		return
	}

	records, err := h.bot.RunForProfile(ctx, req.ProfileID)
	if err != nil {
		h.logger.WarnContext(ctx, "verification run failed",
			"request_id", requestID,
			"profile_id", req.ProfileID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	if records == nil {
		records = []verification.AuditRecord{}
	}
	httputil.WriteJSON(w, http.StatusOK, runResponse{Records: records})
}
