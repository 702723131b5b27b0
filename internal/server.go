package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"
	"golang.org/x/time/rate"

	"github.com/2beens/fitcalc/internal/auth"
	"github.com/2beens/fitcalc/internal/calculators"
	"github.com/2beens/fitcalc/internal/config"
	"github.com/2beens/fitcalc/internal/db"
	"github.com/2beens/fitcalc/internal/geoip"
	"github.com/2beens/fitcalc/internal/middleware"
	"github.com/2beens/fitcalc/internal/report"
	"github.com/2beens/fitcalc/internal/results"
	"github.com/2beens/fitcalc/internal/share"
	"github.com/2beens/fitcalc/internal/telemetry/metrics"
	"github.com/2beens/fitcalc/internal/telemetry/tracing"
	"github.com/2beens/fitcalc/pkg"
)

const (
	sessionsCleanupInterval = 8 * time.Hour
	limiterSweepInterval    = 10 * time.Minute
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config
	// exactly one of dbPool and sqliteDB is set, depending on config.Storage
	dbPool   *pgxpool.Pool
	sqliteDB *sqlx.DB

	registry     *calculators.Registry
	signer       *share.Signer
	geoIp        *geoip.Resolver
	embedLimiter *middleware.IPRateLimiter
	accounts     *auth.Accounts
	resultsRepo  results.Repo

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	DBPassword              string
	RedisPassword           string
	ShareSecret             string
	IpInfoAPIKey            string
	VersionInfo             string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	s := &Server{
		config:      cfg,
		versionInfo: params.VersionInfo,
		registry:    calculators.NewRegistry(cfg.Policy),
	}

	var collectors []prometheus.Collector
	switch cfg.Storage {
	case config.StoragePostgres:
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDB,
			DBUser:         cfg.PostgresUser,
			DBPassword:     params.DBPassword,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}
		if err := db.MigratePostgres(ctx, dbPool); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}

		collectors = append(collectors, pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": cfg.PostgresDB},
		))
		s.dbPool = dbPool
		s.accounts = auth.NewAccounts(auth.NewPsqlRepo(dbPool))
		s.resultsRepo = results.NewPsqlRepo(dbPool)
	default:
		sqliteDB, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		log.Debugf("using sqlite storage: %s", cfg.SQLitePath)
		s.sqliteDB = sqliteDB
		s.accounts = auth.NewAccounts(auth.NewSQLiteRepo(sqliteDB))
		s.resultsRepo = results.NewSQLiteRepo(sqliteDB)
	}

	s.promRegistry = metrics.SetupPrometheus(collectors...)
	s.metricsManager = metrics.NewManager("backend", "fitcalc", s.promRegistry)
	s.metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})
	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}
	s.redisClient = rdb
	s.authService = auth.NewAuthService(cfg.SessionTTL.Duration, rdb)
	s.loginChecker = auth.NewLoginChecker(cfg.SessionTTL.Duration, rdb)

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fitcalc", rdb)
	if err != nil {
		return nil, err
	}
	s.otelShutdown = otelShutdown

	s.signer, err = share.NewSigner(params.ShareSecret, cfg.ShareTTL.Duration)
	if err != nil {
		return nil, fmt.Errorf("new share signer: %w", err)
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   5 * time.Second,
	}
	s.geoIp = geoip.NewResolver(params.IpInfoAPIKey, tracedHttpClient, cfg.GeoIPCacheSizeMiB*1024*1024)
	s.embedLimiter = middleware.NewIPRateLimiter(rate.Limit(cfg.EmbedRatePerSec), cfg.EmbedBurst)

	go s.housekeeping(ctx)

	return s, nil
}

// housekeeping drops expired login sessions and idle embed limiter buckets until ctx is done.
func (s *Server) housekeeping(ctx context.Context) {
	sessionsTicker := time.NewTicker(sessionsCleanupInterval)
	defer sessionsTicker.Stop()
	sweepTicker := time.NewTicker(limiterSweepInterval)
	defer sweepTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sessionsTicker.C:
			s.authService.ScanAndClean(ctx)
		case now := <-sweepTicker.C:
			if removed := s.embedLimiter.Sweep(now); removed > 0 {
				log.Tracef("embed limiter: %d idle clients removed", removed)
			}
		}
	}
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("fitcalc-router"))

	r.HandleFunc("/", s.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	r.HandleFunc("/version", s.handleVersion).Methods("GET", "OPTIONS").Name("version")

	calculators.NewHandler(calculators.NewHandlerParams{
		Registry:       s.registry,
		Signer:         s.signer,
		Systems:        s.geoIp,
		EmbedLimiter:   s.embedLimiter,
		MetricsManager: s.metricsManager,
	}).SetupRoutes(r)
	calculators.NewUnitsHandler(s.geoIp).SetupRoutes(r)
	report.NewHandler(s.registry, s.metricsManager).SetupRoutes(r)

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)

	// rate limit the account endpoints to prevent abuse
	loginSubrouter := r.PathPrefix("/a").Subrouter()
	auth.NewHandler(s.accounts, s.authService).SetupRoutes(loginSubrouter)
	loginSubrouter.Use(middleware.RateLimit(reqRateLimiter, "login", s.config.LoginRatePerMin, s.metricsManager))

	resultsSubrouter := r.NewRoute().Subrouter()
	results.NewHandler(s.resultsRepo, s.registry, s.metricsManager).SetupRoutes(resultsSubrouter)
	resultsSubrouter.Use(middleware.RateLimit(reqRateLimiter, "results", s.config.SaveRatePerMin, s.metricsManager))

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, s.versionInfo)
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.MetricsHost, strconv.Itoa(s.config.MetricsPort))
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var err error
	if s.httpServer != nil {
		err = multierr.Append(err, s.httpServer.Shutdown(ctx))
		log.Warnln("server shut down")
	}
	if s.metricsHttpServer != nil {
		err = multierr.Append(err, s.metricsHttpServer.Shutdown(ctx))
		log.Warnln("metrics server shut down")
	}

	if s.otelShutdown != nil {
		s.otelShutdown()
		log.Trace("otel shut down ...")
	}

	if s.redisClient != nil {
		err = multierr.Append(err, s.redisClient.Close())
	}
	if s.sqliteDB != nil {
		err = multierr.Append(err, s.sqliteDB.Close())
	}
	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	for _, e := range multierr.Errors(err) {
		log.Errorf("shutdown: %s", e)
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
