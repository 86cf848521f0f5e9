package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"oncolife-triage/internal/config"
	"oncolife-triage/internal/normalizer"
	"oncolife-triage/internal/platform/telegram"
	"oncolife-triage/internal/protocol"
	"oncolife-triage/internal/report"
	"oncolife-triage/internal/triage"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.Logging.Mode)
	defer logger.Sync()

	// The clinical protocol is validated up front; a broken module table
	// must not serve any session.
	registry, err := protocol.NewDefaultRegistry()
	if err != nil {
		logger.Fatalw("protocol registry failed validation", "error", err)
	}
	logger.Infow("protocol registry loaded", "questions", registry.TotalQuestions())

	if cfg.Database.URL == "" {
		logger.Fatalw("DATABASE_URL must be set")
	}

	var db *sql.DB
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", cfg.Database.URL)
		if err == nil {
			err = db.Ping()
		}
		if err == nil {
			break
		}
		logger.Infow("waiting for database", "attempt", i+1)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		logger.Fatalw("could not connect to database", "error", err)
	}
	logger.Infow("connected to database")

	m, err := migrate.New(cfg.Database.MigrationsPath, cfg.Database.URL)
	if err != nil {
		logger.Fatalw("migration init failed", "error", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Fatalw("migration up failed", "error", err)
	}
	logger.Infow("migrations applied")

	if cfg.Telegram.CareTeamChatID == 0 {
		logger.Warnw("CARE_TEAM_CHAT_ID is not set, care-team reports will not be delivered")
	}
	tgClient := telegram.NewClient(cfg.Telegram.BotToken)
	reportSvc := report.NewService(tgClient, cfg.Telegram.CareTeamChatID, logger)

	nlClient := normalizer.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)

	repo := triage.NewRepository(db)
	engine := triage.NewEngine(registry)
	svc := triage.NewService(repo, engine, nlClient, reportSvc, logger, cfg.Triage.ConfidenceThreshold)
	handler := triage.NewHandler(svc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS for the web frontend
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
			if r.Method == "OPTIONS" {
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Route("/api", func(r chi.Router) {
		triage.RegisterRoutes(r, handler)
	})

	addr := ":" + cfg.Server.Port
	logger.Infow("server starting", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatalw("server error", "error", err)
	}
}

func newLogger(mode string) *zap.SugaredLogger {
	var zl *zap.Logger
	var err error
	if mode == "prod" || mode == "production" {
		zl, err = zap.NewProduction()
	} else {
		zl, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return zl.Sugar()
}
