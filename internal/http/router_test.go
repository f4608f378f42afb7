package httpapi

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curbo/internal/platform/logger"
	"curbo/internal/platform/middleware"
	"curbo/internal/policy"
	"curbo/internal/ratelimit"
	"curbo/internal/recall"
	"curbo/internal/verification"
	"curbo/pkg/testutil"
)

type fakeValidator struct {
	claims *middleware.JWTClaims
}

func (f *fakeValidator) ValidateToken(token string) (*middleware.JWTClaims, error) {
	if f.claims == nil || token != "valid-token" {
		return nil, errors.New("invalid token")
	}
	return f.claims, nil
}

type fakeRecallService struct {
	result *recall.Result
}

func (f *fakeRecallService) Lookup(_ context.Context, _ string) (*recall.Result, error) {
	return f.result, nil
}

type fakeBot struct{}

func (f *fakeBot) RunForProfile(_ context.Context, _ string) ([]verification.AuditRecord, error) {
	return nil, nil
}

func (f *fakeBot) RunPending(_ context.Context) (*verification.BatchResult, error) {
	return &verification.BatchResult{Processed: 2, Flagged: 1}, nil
}

func newTestRouter(validator middleware.JWTValidator) http.Handler {
	return NewRouter(Deps{
		Logger:       logger.New(),
		JWTValidator: validator,
		Recalls: &fakeRecallService{result: &recall.Result{
			State:     recall.StateFetched,
			Badge:     recall.Badge{Color: "green", Label: "No known recalls"},
			Recalls:   []recall.Record{},
			FetchedAt: time.Now(),
			RateLimit: &ratelimit.Result{Allowed: true, Limit: 10, Remaining: 9, ResetAt: time.Now().Add(time.Minute)},
		}},
		Policies:     policy.NewService(policy.NewInMemoryStore()),
		Verification: &fakeBot{},
	})
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(&fakeValidator{})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))

	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "status", "ok")
}

func TestRecallLookupThroughFullChain(t *testing.T) {
	router := newTestRouter(&fakeValidator{})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/vehicles/recalls?vehicleId=veh-1"))

	testutil.AssertStatusOK(t, rr)
	assert.Equal(t, "10", rr.Header().Get("X-RateLimit-Limit"))
	testutil.AssertJSONContains(t, rr, "cached", false)
}

func TestDealerPolicyRequiresAuth(t *testing.T) {
	router := newTestRouter(&fakeValidator{})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/dealers/policy"))

	testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
}

func TestDealerPolicyWithToken(t *testing.T) {
	validator := &fakeValidator{claims: &middleware.JWTClaims{UserID: "dealer-1", Role: "dealer"}}
	router := newTestRouter(validator)

	req := testutil.NewRequest(t, http.MethodGet, "/dealers/policy")
	req.Header.Set("Authorization", "Bearer valid-token")
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatusOK(t, rr)
	// No stored policy: the platform default comes back with the dealer id.
	resp := testutil.UnmarshalResponse[policy.DealerPolicy](t, rr)
	require.Equal(t, "dealer-1", resp.DealerID)
	assert.Equal(t, policy.PlatformMinimumYear, resp.MinVehicleYear)
}

func TestVerificationRunRequiresAdmin(t *testing.T) {
	validator := &fakeValidator{claims: &middleware.JWTClaims{UserID: "dealer-1", Role: "dealer"}}
	router := newTestRouter(validator)

	req := testutil.NewRequestWithBody(t, http.MethodPost, "/verification/run", `{}`)
	req.Header.Set("Authorization", "Bearer valid-token")
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusForbidden)
}

func TestVerificationBatchAsAdmin(t *testing.T) {
	validator := &fakeValidator{claims: &middleware.JWTClaims{UserID: "admin-1", Role: "admin"}}
	router := newTestRouter(validator)

	req := testutil.NewRequestWithBody(t, http.MethodPost, "/verification/run", `{}`)
	req.Header.Set("Authorization", "Bearer valid-token")
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "processed", float64(2))
}
