package server

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"appraisal/internal/domain/notifications"
	"appraisal/internal/domain/reports"
	"appraisal/internal/platform/config"
	"appraisal/internal/platform/metrics"
	"appraisal/internal/platform/seed"
	"appraisal/internal/platform/state"
	"appraisal/internal/transport/http/api"
	appraisalshandler "appraisal/internal/transport/http/handlers/appraisals"
	assignmentshandler "appraisal/internal/transport/http/handlers/assignments"
	authhandler "appraisal/internal/transport/http/handlers/auth"
	employeeshandler "appraisal/internal/transport/http/handlers/employees"
	formshandler "appraisal/internal/transport/http/handlers/forms"
	notificationshandler "appraisal/internal/transport/http/handlers/notifications"
	reportshandler "appraisal/internal/transport/http/handlers/reports"
	taskshandler "appraisal/internal/transport/http/handlers/tasks"
	templateshandler "appraisal/internal/transport/http/handlers/templates"
	"appraisal/internal/transport/http/middleware"
)

// App holds the wired application. Router is exposed so tests can drive
// the full stack through httptest.
type App struct {
	Config  config.Config
	Logger  zerolog.Logger
	Store   *state.Store
	Metrics *metrics.Collector
	Router  http.Handler
}

// New wires the store, services and HTTP surface from config. The clock
// and random source are injectable for tests; pass nil for production
// defaults.
func New(cfg config.Config, logger zerolog.Logger, now func() time.Time, rnd *rand.Rand) *App {
	if now == nil {
		now = time.Now
	}
	if rnd == nil {
		source := cfg.DemoSeed
		if source == 0 {
			source = time.Now().UnixNano()
		}
		rnd = rand.New(rand.NewSource(source))
	}

	collector := metrics.New()
	store := state.NewStore(seed.Demo(now()), now, rnd, collector, logger)
	reads := notifications.NewReadMarks()
	notifySvc := notifications.New(store, reads, now, logger)
	reportsSvc := reports.NewService(store, now)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger, collector))
	router.Use(middleware.Recover(logger))
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute, logger))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		// Everything lives in memory; ready as soon as the store exists.
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(store, cfg.JWTSecret, cfg.SessionTTL).RegisterRoutes(r)
		employeeshandler.NewHandler(store).RegisterRoutes(r)
		templateshandler.NewHandler(store).RegisterRoutes(r)
		formshandler.NewHandler(store).RegisterRoutes(r)
		assignmentshandler.NewHandler(store).RegisterRoutes(r)
		appraisalshandler.NewHandler(store).RegisterRoutes(r)
		taskshandler.NewHandler(store).RegisterRoutes(r)
		notificationshandler.NewHandler(notifySvc).RegisterRoutes(r)
		reportshandler.NewHandler(reportsSvc).RegisterRoutes(r)

		if cfg.MetricsEnabled {
			r.With(middleware.RequireAdmin).Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
				api.Success(w, collector.Snapshot(), middleware.GetRequestID(req.Context()))
			})
		}
	})

	return &App{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		Metrics: collector,
		Router:  router,
	}
}

// Run builds the app from the environment and serves until the listener
// fails.
func Run() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := config.NewLogger(cfg)

	app := New(cfg, logger, nil, nil)
	logger.Info().Str("addr", cfg.Addr).Str("env", cfg.Environment).Msg("appraisal server listening")
	return http.ListenAndServe(cfg.Addr, app.Router)
}
