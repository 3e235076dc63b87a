// Package bootstrap assembles the application from configuration.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nessydroid1192/may-tejiarte/internal/library"
	"github.com/nessydroid1192/may-tejiarte/internal/llm"
	"github.com/nessydroid1192/may-tejiarte/internal/llm/gemini"
	"github.com/nessydroid1192/may-tejiarte/internal/mediation"
	"github.com/nessydroid1192/may-tejiarte/internal/services/health"
	"github.com/nessydroid1192/may-tejiarte/internal/session"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/config"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/server"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/storage/db"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/storage/kv"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/storage/kv/local"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/storage/kv/memory"
	miniostore "github.com/nessydroid1192/may-tejiarte/internal/shared/storage/kv/minio"
	pgstore "github.com/nessydroid1192/may-tejiarte/internal/shared/storage/kv/pg"
	s3store "github.com/nessydroid1192/may-tejiarte/internal/shared/storage/kv/s3"
	"github.com/nessydroid1192/may-tejiarte/internal/shared/telemetry"
	"github.com/nessydroid1192/may-tejiarte/internal/viewstate"
)

// App holds shared dependencies.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	DB       *sql.DB
	Store    kv.Store
	LLM      llm.Client
	Adapter  *mediation.Adapter
	Library  *library.Repository
	Sessions *session.Registry
}

// Build wires the application. Dev-like environments fall back to in-process
// substitutes when an external dependency is unavailable.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{Config: cfg}

	store, sqlDB, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.Store = store
	app.DB = sqlDB

	app.Adapter, err = BuildAdapter(ctx, cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.LLM = app.Adapter.Client
	app.Library = library.NewRepository(store)

	app.Sessions, err = session.NewRegistry(cfg.SessionCacheSize, session.Deps{
		Adapter: app.Adapter,
		Library: app.Library,
		Options: viewstate.Options{Timeout: cfg.LLMTimeout, MaxBytes: cfg.MaxUploadBytes},
	})
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:   cfg,
		Sessions: app.Sessions,
		Health:   health.NewService(app.Store, app.LLM),
	})
	return app, nil
}

// Close releases held connections.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// BuildAdapter returns the mediation adapter over the configured model
// client and prompt catalog.
func BuildAdapter(ctx context.Context, cfg config.Config) (*mediation.Adapter, error) {
	client, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}
	prompts, err := llm.LoadPrompts(cfg.PromptsFile)
	if err != nil {
		return nil, err
	}
	return &mediation.Adapter{Client: client, Prompts: prompts}, nil
}

// BuildStore returns the library store selected by cfg.LibraryStore.
func BuildStore(ctx context.Context, cfg config.Config) (kv.Store, *sql.DB, error) {
	return buildStore(ctx, cfg)
}

func buildStore(ctx context.Context, cfg config.Config) (kv.Store, *sql.DB, error) {
	switch cfg.LibraryStore {
	case "memory":
		return memory.New(), nil, nil
	case "postgres":
		sqlDB, err := buildDB(ctx, cfg)
		if err != nil {
			return degrade(cfg, "postgres", err)
		}
		return &pgstore.Store{DB: sqlDB}, sqlDB, nil
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return degrade(cfg, "s3", fmt.Errorf("LIBRARY_STORE=s3 requires S3_BUCKET"))
		}
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return degrade(cfg, "s3", err)
		}
		return store, nil, nil
	case "minio":
		store, err := miniostore.New(miniostore.Config{
			Endpoint:  cfg.MinIO.Endpoint,
			Region:    cfg.AWSRegion,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Bucket:    cfg.MinIO.Bucket,
			UseSSL:    cfg.MinIO.UseSSL,
		})
		if err != nil {
			return degrade(cfg, "minio", err)
		}
		return store, nil, nil
	default:
		return local.New(cfg.LocalStoreDir), nil, nil
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		return nil, err
	}
	if _, err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func degrade(cfg config.Config, kind string, cause error) (kv.Store, *sql.DB, error) {
	if !cfg.IsDevLike() {
		return nil, nil, fmt.Errorf("library store %s: %w", kind, cause)
	}
	telemetry.Warn("bootstrap.store.fallback", map[string]any{
		"store": kind,
		"error": cause,
	})
	return memory.New(), nil, nil
}

func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if cfg.LLMProvider != "gemini" {
		telemetry.Warn("bootstrap.llm.disabled", map[string]any{"provider": cfg.LLMProvider})
		return llm.PlaceholderClient{}, nil
	}
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.llm.disabled", map[string]any{"reason": "missing GEMINI_API_KEY"})
			return llm.PlaceholderClient{}, nil
		}
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	client, err := gemini.NewClient(ctx, gemini.Options{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Timeout: cfg.LLMTimeout,
		Breaker: gemini.BreakerOptions{
			FailureRatio: cfg.Breaker.FailureRatio,
			MinRequests:  cfg.Breaker.MinRequests,
			Interval:     cfg.Breaker.Interval,
			OpenTimeout:  cfg.Breaker.OpenTimeout,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	telemetry.Info("bootstrap.llm.ready", map[string]any{"model": client.Name()})
	return client, nil
}
