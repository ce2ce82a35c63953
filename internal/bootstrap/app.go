package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"aris-backend/internal/applications"
	"aris-backend/internal/githubmetrics"
	"aris-backend/internal/llm"
	"aris-backend/internal/shared/config"
	"aris-backend/internal/shared/server"
	"aris-backend/internal/shared/storage/db"
	"aris-backend/internal/shared/storage/object"
	localstore "aris-backend/internal/shared/storage/object/local"
	s3store "aris-backend/internal/shared/storage/object/s3"
	"aris-backend/internal/verify"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	ApplicationsRepo    applications.Repo
	ApplicationsService *applications.Service
	ApplicationsHandler *applications.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              app.Config,
		ApplicationsHandler: app.ApplicationsHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	cfg := app.Config

	var repo applications.Repo
	if app.DB != nil {
		repo = &applications.PGRepo{DB: app.DB}
	} else {
		repo = applications.NewMemoryRepo()
	}

	client := buildLLMClient(cfg)

	svc := &applications.Service{
		Repo:     repo,
		Metrics:  githubmetrics.NewClient(cfg.GitHubAPIBase, cfg.GitHubToken),
		Enricher: llm.Enricher{Client: client},
		Verifier: verify.Pipeline{Client: client},
		Store:    app.Store,
	}

	app.ApplicationsRepo = repo
	app.ApplicationsService = svc
	app.ApplicationsHandler = applications.NewHandler(svc)
}

func buildLLMClient(cfg config.Config) llm.Client {
	if strings.TrimSpace(cfg.LLMAPIKey) == "" {
		log.Printf("bootstrap: LLM_API_KEY empty; enrichment and verification disabled")
		return llm.Placeholder{}
	}
	client, err := llm.NewOpenAIClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	if err != nil {
		log.Printf("bootstrap: llm client init failed; enrichment and verification disabled: %v", err)
		return llm.Placeholder{}
	}
	return client
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
