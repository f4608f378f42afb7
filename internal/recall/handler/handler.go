// Package handler serves the public recall badge endpoint.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"curbo/internal/platform/middleware"
	"curbo/internal/ratelimit"
	"curbo/internal/recall"
	"curbo/pkg/platform/httputil"
)

// Service defines the recall lookup operation.
type Service interface {
	Lookup(ctx context.Context, vehicleID string) (*recall.Result, error)
}

// Handler serves GET /vehicles/recalls. Every response, success or failure,
// carries rate-limit headers so clients can pace refreshes.
type Handler struct {
	logger  *slog.Logger
	recalls Service
}

func New(recalls Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		recalls: recalls,
	}
}

// Register registers the recall routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Get("/vehicles/recalls", h.handleLookup)
	})
}

type lookupResponse struct {
	Badge     recall.Badge     `json:"badge"`
	Standing  *recall.Standing `json:"standing"`
	Recalls   []recall.Record  `json:"recalls"`
	FetchedAt time.Time        `json:"fetchedAt"`
	ExpiresAt time.Time        `json:"expiresAt"`
	Cached    bool             `json:"cached"`
	Warning   string           `json:"warning,omitempty"`
}

func (h *Handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vehicleID := r.URL.Query().Get("vehicleId")

	result, err := h.recalls.Lookup(ctx, vehicleID)
	if result != nil {
		writeRateLimitHeaders(w, result.RateLimit)
	}
	if err != nil {
		h.logger.InfoContext(ctx, "recall lookup rejected",
			"request_id", middleware.GetRequestID(ctx),
			"vehicle_id", vehicleID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	recalls := result.Recalls
	if recalls == nil {
		recalls = []recall.Record{}
	}
	httputil.WriteJSON(w, http.StatusOK, lookupResponse{
		Badge:     result.Badge,
		Standing:  result.Standing,
		Recalls:   recalls,
		FetchedAt: result.FetchedAt,
		ExpiresAt: result.ExpiresAt,
		Cached:    result.Cached,
		Warning:   result.Warning,
	})
}

func writeRateLimitHeaders(w http.ResponseWriter, rl *ratelimit.Result) {
	if rl == nil {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(rl.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(rl.ResetAt.Unix(), 10))
	if !rl.Allowed && rl.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter))
	}
}
