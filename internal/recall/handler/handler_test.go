package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curbo/internal/platform/logger"
	"curbo/internal/ratelimit"
	"curbo/internal/recall"
	dErrors "curbo/pkg/domain-errors"
)

type fakeService struct {
	result *recall.Result
	err    error
}

func (f *fakeService) Lookup(_ context.Context, _ string) (*recall.Result, error) {
	return f.result, f.err
}

func serve(t *testing.T, svc Service, target string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	New(svc, logger.New()).Register(r)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func allowedLimit(remaining int) *ratelimit.Result {
	return &ratelimit.Result{
		Allowed:   true,
		Limit:     10,
		Remaining: remaining,
		ResetAt:   time.Date(2026, 8, 1, 12, 1, 0, 0, time.UTC),
	}
}

func TestLookupSuccess(t *testing.T) {
	fetchedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc := &fakeService{result: &recall.Result{
		State: recall.StateFetched,
		Badge: recall.Badge{Color: "yellow", Label: "1 open recall(s)", RecallCount: 1, Severity: recall.SeverityLow},
		Recalls: []recall.Record{
			{CampaignNumber: "24V001", Component: "EXTERIOR LIGHTING"},
		},
		FetchedAt: fetchedAt,
		ExpiresAt: fetchedAt.Add(7 * 24 * time.Hour),
		RateLimit: allowedLimit(9),
	}}

	rec := serve(t, svc, "/vehicles/recalls?vehicleId=veh-1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "10", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "9", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))

	var body struct {
		Badge   recall.Badge    `json:"badge"`
		Recalls []recall.Record `json:"recalls"`
		Cached  bool            `json:"cached"`
		Warning string          `json:"warning"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "yellow", body.Badge.Color)
	assert.Len(t, body.Recalls, 1)
	assert.False(t, body.Cached)
	assert.Empty(t, body.Warning)
}

func TestLookupStaleIncludesWarning(t *testing.T) {
	svc := &fakeService{result: &recall.Result{
		State:     recall.StateStale,
		Badge:     recall.Badge{Color: "green", Label: "No known recalls"},
		Cached:    true,
		Warning:   "recall data may be outdated",
		RateLimit: allowedLimit(5),
	}}

	rec := serve(t, svc, "/vehicles/recalls?vehicleId=veh-1")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "recall data may be outdated", body["warning"])
	assert.Equal(t, true, body["cached"])
}

func TestLookupMissingVehicleID(t *testing.T) {
	svc := &fakeService{
		result: &recall.Result{RateLimit: allowedLimit(10)},
		err:    dErrors.New(dErrors.CodeBadRequest, "vehicleId is required"),
	}

	rec := serve(t, svc, "/vehicles/recalls")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "10", rec.Header().Get("X-RateLimit-Limit"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}

func TestLookupRateLimited(t *testing.T) {
	svc := &fakeService{
		result: &recall.Result{RateLimit: &ratelimit.Result{
			Allowed:    false,
			Limit:      10,
			Remaining:  0,
			ResetAt:    time.Date(2026, 8, 1, 12, 1, 0, 0, time.UTC),
			RetryAfter: 42,
		}},
		err: dErrors.New(dErrors.CodeRateLimited, "recall lookup rate limit exceeded"),
	}

	rec := serve(t, svc, "/vehicles/recalls?vehicleId=veh-1")

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "42", rec.Header().Get("Retry-After"))
}

func TestLookupNotFound(t *testing.T) {
	svc := &fakeService{
		result: &recall.Result{RateLimit: allowedLimit(10)},
		err:    dErrors.New(dErrors.CodeNotFound, "vehicle not found"),
	}

	rec := serve(t, svc, "/vehicles/recalls?vehicleId=veh-404")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}
