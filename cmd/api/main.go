package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crucial707/schoolboard/internal/auth"
	"github.com/crucial707/schoolboard/internal/config"
	"github.com/crucial707/schoolboard/internal/db"
	"github.com/crucial707/schoolboard/internal/handlers"
	"github.com/crucial707/schoolboard/internal/middleware"
	"github.com/crucial707/schoolboard/internal/repo"
	"github.com/crucial707/schoolboard/internal/scheduler"
	"github.com/crucial707/schoolboard/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {

	// Load configuration
	cfg := config.Load()
	setupLogging(cfg.LogFormat)

	if cfg.MigrateOnStart {
		if err := db.Migrate(cfg.DatabaseURL()); err != nil {
			slog.Error("migrations failed", "error", err)
			os.Exit(1)
		}
	}

	database, err := db.Connect(
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBUser,
		cfg.DBPass,
		cfg.DBMaxOpenConns,
		cfg.DBMaxIdleConns,
	)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	if cfg.MetricsRefreshCron != "" && cfg.MetricsRefreshCron != "off" {
		c, err := scheduler.Run(cfg.MetricsRefreshCron, repo.NewAnnouncementRepo(database))
		if err != nil {
			slog.Error("invalid METRICS_REFRESH_CRON", "spec", cfg.MetricsRefreshCron, "error", err)
			os.Exit(1)
		}
		defer c.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(database, cfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown", "error", err)
		}
	}()

	tls := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""
	slog.Info("starting server", "port", cfg.Port, "tls", tls, "session_header", cfg.SessionHeader)
	if tls {
		err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
	} else {
		err = srv.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogging(format string) {
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		h = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(h))
}

// newRouter wires repositories, services and handlers onto a chi router.
func newRouter(database *sql.DB, cfg config.Config) http.Handler {
	sessionHeader := cfg.SessionHeader
	if sessionHeader == "" {
		sessionHeader = "username"
	}

	userRepo := repo.NewUserRepo(database)
	announcementRepo := repo.NewAnnouncementRepo(database)
	auditRepo := repo.NewAuditRepo(database)

	sessions := auth.NewHeaderResolver(userRepo)
	authSvc := service.NewAuthService(userRepo, auth.PasswordVerifier{})
	announcementSvc := service.NewAnnouncementService(announcementRepo, sessions, auditRepo)

	authHandler := &handlers.AuthHandler{Service: authSvc}
	announcementHandler := &handlers.AnnouncementHandler{Service: announcementSvc, SessionHeader: sessionHeader}
	auditHandler := &handlers.AuditHandler{Repo: auditRepo}

	hsts := cfg.Env == "prod" && cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog(sessionHeader))
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(hsts))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins, sessionHeader))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	r.Get("/health", handlers.Health)
	r.Get("/ready", handlers.Ready(database))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/announcements", func(r chi.Router) {
		r.Get("/", announcementHandler.ListAnnouncements)
		r.Post("/", announcementHandler.CreateAnnouncement)
		r.Put("/{id}", announcementHandler.UpdateAnnouncement)
		r.Delete("/{id}", announcementHandler.DeleteAnnouncement)
	})

	loginLimiter := middleware.LoginRateLimiter()
	r.Route("/auth", func(r chi.Router) {
		r.With(loginLimiter.Middleware).Post("/login", authHandler.Login)
		r.Get("/check-session", authHandler.CheckSession)
	})

	r.With(middleware.Session(sessions, sessionHeader)).Get("/audit", auditHandler.ListAudit)

	return r
}
