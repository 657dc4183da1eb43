package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"

	"github.com/mikemcg87/archon-codebase-intelligence/internal/application"
	appanalysis "github.com/mikemcg87/archon-codebase-intelligence/internal/application/analysis"
	appinsight "github.com/mikemcg87/archon-codebase-intelligence/internal/application/insight"
	"github.com/mikemcg87/archon-codebase-intelligence/internal/config"
	domainanalysis "github.com/mikemcg87/archon-codebase-intelligence/internal/domain/analysis"
	domaininsight "github.com/mikemcg87/archon-codebase-intelligence/internal/domain/insight"
	"github.com/mikemcg87/archon-codebase-intelligence/internal/domain/scanlog"
	aiopenai "github.com/mikemcg87/archon-codebase-intelligence/internal/infra/ai/openai"
	mysqldb "github.com/mikemcg87/archon-codebase-intelligence/internal/infra/db/mysql"
	pgdb "github.com/mikemcg87/archon-codebase-intelligence/internal/infra/db/postgres"
	sqlitedb "github.com/mikemcg87/archon-codebase-intelligence/internal/infra/db/sqlite"
	"github.com/mikemcg87/archon-codebase-intelligence/internal/infra/httpserver"
	minioStore "github.com/mikemcg87/archon-codebase-intelligence/internal/infra/storage"
	"github.com/mikemcg87/archon-codebase-intelligence/internal/middleware"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx := context.Background()

	db, deps, err := buildRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	analysisSvc := &appanalysis.Service{
		Repo:     deps.analyses,
		ErrorLog: deps.scanErrors,
		Clock:    application.SystemClock{},
	}

	if cfg.Minio.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			return fmt.Errorf("minio init: %w", err)
		}
		analysisSvc.Reports = store
	}

	var insightSvc *appinsight.Service
	if cfg.AI.APIKey != "" {
		client := aiopenai.NewClient(cfg.AI.APIKey, cfg.AI.Model)
		insightSvc = appinsight.NewService(deps.insights, client, client.Model)
	} else {
		log.Println("no AI API key configured, insight endpoints disabled")
	}

	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.RateLimitMiddleware(100, 10))
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(cfg),
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization", "If-None-Match"},
		ExposedHeaders: []string{"ETag"},
		MaxAge:         300,
	}))
	mux.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))

	mux.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(120 * time.Second))
		r.Mount("/", httpserver.NewRouter(analysisSvc, insightSvc))
	})

	mux.Get("/health", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s (driver=%s)", addr, cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	return nil
}

type repositories struct {
	analyses   domainanalysis.Repository
	insights   domaininsight.Repository
	scanErrors scanlog.Repository // nil for sqlite
}

// buildRepositories connects the configured database and wires the repo set.
// sqlite has no scan error log table, so that repo stays nil and the service
// skips failure recording.
func buildRepositories(ctx context.Context, cfg *config.Config) (*sql.DB, repositories, error) {
	var deps repositories

	switch cfg.Database.Driver {
	case "postgres":
		db, err := pgdb.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, deps, fmt.Errorf("postgres connect: %w", err)
		}
		deps.analyses = pgdb.NewAnalysisRepository(db)
		deps.insights = pgdb.NewInsightRepository(db)
		deps.scanErrors = pgdb.NewScanLogRepository(db)
		return db, deps, nil

	case "mysql":
		db, err := mysqldb.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, deps, fmt.Errorf("mysql connect: %w", err)
		}
		deps.analyses = mysqldb.NewAnalysisRepository(db)
		deps.insights = mysqldb.NewInsightRepository(db)
		deps.scanErrors = mysqldb.NewScanLogRepository(db)
		return db, deps, nil

	case "sqlite":
		db, err := sqlitedb.Connect(ctx, cfg.Database.Path)
		if err != nil {
			return nil, deps, fmt.Errorf("sqlite connect: %w", err)
		}
		deps.analyses = sqlitedb.NewAnalysisRepository(db)
		deps.insights = sqlitedb.NewInsightRepository(db)
		return db, deps, nil

	default:
		return nil, deps, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.Server.AllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.Server.AllowedOrigins
}
