package internal

import (
	"context"
	"garage/internal/api"
	"garage/internal/controllers"
	"garage/internal/latency"
	"garage/internal/providers"
	"garage/internal/repository"
	"garage/internal/seed"
	"garage/internal/services"
	"garage/internal/storage"
	"garage/internal/store"
	"garage/internal/structures"
	"garage/internal/testutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct{}

func (stubSource) Fetch(context.Context) ([]byte, error) {
	return []byte(`{"vehicles":[{"id":"v1","year":2018,"make":"Ford","model":"Focus","condition":"used","features":[],"images":[]}],"timeSlots":["9:00 AM"]}`), nil
}
func (stubSource) Name() string { return "stub" }

type testServer struct {
	handler http.Handler
	router  providers.RouterProviderInterface
	metrics *testutil.MockMetrics
	loader  *seed.Loader
	store   *store.Store
	logger  *testutil.MockLogger
}

func newTestServer(t *testing.T, authRate float64, burst int) *testServer {
	t.Helper()
	conf := &structures.Config{
		Auth: structures.AuthConfig{Secret: "test-secret-123", SessionWindow: time.Hour, RateLimit: authRate, Burst: burst},
	}
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	slots := storage.NewMemoryStorage()
	keys := storage.NewKeys("t")
	loader := seed.NewLoader(stubSource{}, slots, keys, logger, metrics)
	st := store.NewStore(slots, keys, logger, metrics)
	ids := repository.NewIDGenerator()
	sim := latency.NewSimulator(0)
	users := repository.NewUserRepository(st, ids)
	auth := services.NewAuthService(users, st, services.NewTokenIssuer(conf), sim, logger)
	facade := api.NewFacade(st, loader, auth, users,
		repository.NewVehicleRepository(st, ids),
		repository.NewAppointmentRepository(st, ids),
		repository.NewCatalogRepository(st),
		sim, logger)

	ac := controllers.NewApiController(logger, facade, testutil.NewMockCache())
	hc := controllers.NewHealthController(st, loader, slots)
	router := InitRoutes(ac, providers.NewRateLimiter(conf))
	return &testServer{
		handler: NewHandler(hc, conf, router, metrics),
		router:  router,
		metrics: metrics,
		loader:  loader,
		store:   st,
		logger:  logger,
	}
}

func (ts *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func TestInitRoutes_RegistersAllRoutes(t *testing.T) {
	ts := newTestServer(t, 0, 0)

	routes := ts.router.GetRoutes()
	require.Len(t, routes, 20)

	patterns := make(map[string]bool, len(routes))
	for _, r := range routes {
		patterns[r.Pattern()] = true
	}
	for _, p := range []string{
		"POST /auth/login", "POST /auth/register", "POST /auth/logout", "GET /auth/session",
		"GET /services", "GET /testimonials", "GET /time-slots",
		"GET /vehicles", "GET /vehicles/{id}", "POST /vehicles", "PUT /vehicles/{id}", "DELETE /vehicles/{id}",
		"GET /appointments", "POST /appointments", "PUT /appointments/{id}", "PUT /appointments/{id}/status", "DELETE /appointments/{id}",
		"GET /users", "GET /users/{id}", "POST /reset",
	} {
		assert.True(t, patterns[p], "missing route %s", p)
	}
}

func TestHandler_EndToEnd(t *testing.T) {
	ts := newTestServer(t, 0, 0)
	require.NoError(t, Bootstrap(context.Background(), ts.loader, ts.store, ts.logger))

	rr := ts.do(http.MethodGet, "/vehicles/v1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"make":"Ford"`)

	rr = ts.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.do(http.MethodPatch, "/vehicles/v1", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	rr = ts.do(http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	assert.Equal(t, 1, ts.metrics.Requests["GET /vehicles/{id}"])
	assert.Zero(t, ts.metrics.Requests["/health"])
}

func TestHandler_MetricsEndpointOnlyWhenEnabled(t *testing.T) {
	ts := newTestServer(t, 0, 0)

	rr := ts.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_AuthRoutesAreRateLimited(t *testing.T) {
	ts := newTestServer(t, 0.001, 2)
	body := `{"email":"nobody@x.com","password":"whatever"}`

	assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodPost, "/auth/login", body).Code)
	assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodPost, "/auth/login", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, ts.do(http.MethodPost, "/auth/login", body).Code)

	// other routes are not throttled
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/time-slots", "").Code)
}

func TestBootstrap_SeedsAndHydrates(t *testing.T) {
	ts := newTestServer(t, 0, 0)

	require.NoError(t, Bootstrap(context.Background(), ts.loader, ts.store, ts.logger))
	assert.True(t, ts.loader.Seeded())

	ds, err := ts.store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.Vehicles, 1)
}
