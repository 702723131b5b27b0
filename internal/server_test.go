package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/2beens/fitcalc/internal/auth"
	"github.com/2beens/fitcalc/internal/calculators"
	"github.com/2beens/fitcalc/internal/config"
	"github.com/2beens/fitcalc/internal/db"
	"github.com/2beens/fitcalc/internal/geoip"
	"github.com/2beens/fitcalc/internal/middleware"
	"github.com/2beens/fitcalc/internal/policy"
	"github.com/2beens/fitcalc/internal/results"
	"github.com/2beens/fitcalc/internal/share"
	"github.com/2beens/fitcalc/internal/telemetry/metrics"

	"github.com/go-redis/redismock/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, redismock.ClientMock) {
	t.Helper()

	sqliteDB, err := db.OpenSQLite(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteDB.Close() })

	signer, err := share.NewSigner("server-test-secret", time.Hour)
	require.NoError(t, err)

	rdb, rdbMock := redismock.NewClientMock()
	cfg, err := config.Parse("dev", "[development]\nallowed_origins = [\"https://fitcalc.app\"]\n")
	require.NoError(t, err)

	metricsManager, promRegistry := metrics.NewTestManagerAndRegistry()
	return &Server{
		config:         cfg,
		versionInfo:    "test-version",
		sqliteDB:       sqliteDB,
		registry:       calculators.NewRegistry(policy.Defaults()),
		signer:         signer,
		geoIp:          geoip.NewResolver("", nil, 0),
		embedLimiter:   middleware.NewIPRateLimiter(1, 5),
		accounts:       auth.NewAccounts(auth.NewSQLiteRepo(sqliteDB)),
		resultsRepo:    results.NewSQLiteRepo(sqliteDB),
		redisClient:    rdb,
		loginChecker:   auth.NewLoginChecker(time.Hour, rdb),
		authService:    auth.NewAuthService(time.Hour, rdb),
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   func() {},
	}, rdbMock
}

func serve(router *mux.Router, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	req.RemoteAddr = "127.0.0.1:4321"
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestServer_Routes(t *testing.T) {
	s, _ := newTestServer(t)
	router := s.routerSetup()

	rr := serve(router, "GET", "/", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = serve(router, "GET", "/version", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "test-version", rr.Body.String())

	rr = serve(router, "GET", "/calculators", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = serve(router, "POST", "/calculators/bmi/calculate", `{"height":"175","weight":"70"}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"state":"success"`)

	rr = serve(router, "GET", "/units/system", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"system":"metric"}`, rr.Body.String())

	rr = serve(router, "POST", "/calculators/bmi/pdf", `{"height":"175","weight":"70"}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))

	rr = serve(router, "GET", "/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.metricsManager.CounterCalculations.WithLabelValues("bmi", "success")))
}

func TestServer_Routes_Results_NeedLogin(t *testing.T) {
	s, rdbMock := newTestServer(t)
	router := s.routerSetup()

	rr := serve(router, "GET", "/results/page/1/size/10", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rdbMock.ExpectGet("fitcalc-session||bad-token").RedisNil()
	req := httptest.NewRequest("GET", "/results/page/1/size/10", nil)
	req.Header.Set(auth.TokenHeader, "bad-token")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.NoError(t, rdbMock.ExpectationsWereMet())
}

func TestServer_Routes_Cors(t *testing.T) {
	s, _ := newTestServer(t)
	router := s.routerSetup()

	req := httptest.NewRequest("GET", "/calculators", nil)
	req.Header.Set("Origin", "https://evil.example")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	req = httptest.NewRequest("GET", "/calculators", nil)
	req.Header.Set("Origin", "https://fitcalc.app")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "https://fitcalc.app", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_Housekeeping_StopsWithContext(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.housekeeping(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("housekeeping did not stop")
	}
}

func TestServer_GracefulShutdown_NotServing(t *testing.T) {
	s, _ := newTestServer(t)
	assert.NotPanics(t, s.GracefulShutdown)
}
