package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "resume-builder/internal/auth"
	"resume-builder/internal/resumes"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/storage/docstore"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/users"
	"resume-builder/resume/render"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	Store          string
	DB             *sql.DB
	Mongo          *docstore.Store
	Signer         *auth.Signer
	Styles         *render.Registry
	UsersRepo      users.Repo
	ResumesRepo    resumes.Repo
	UsersService   *users.Service
	ResumesService *resumes.Service
	UsersHandler   *users.Handler
	ResumesHandler *resumes.Handler
	GoogleAuth     *googleauth.GoogleService
	Health         *health.Service
}

// Build connects the configured store, wires services and handlers, and
// registers routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.Store) == "" {
		cfg.Store = config.StoreMemory
	}

	signer, err := auth.NewSigner(cfg.JWTSecret, cfg.TokenTTL, cfg.Env)
	if err != nil {
		return nil, err
	}

	styles, err := buildStyles(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Signer: signer, Styles: styles}
	if err := buildStore(ctx, app); err != nil {
		return nil, err
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        app.Config,
		Verifier:      app.Signer,
		Health:        app.Health,
		UserHandler:   app.UsersHandler,
		ResumeHandler: app.ResumesHandler,
		GoogleAuth:    app.GoogleAuth,
	})

	return app, nil
}

// Close releases store connections.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	if a.Mongo != nil {
		errs = append(errs, a.Mongo.Close(ctx))
	}
	return errors.Join(errs...)
}

func buildStyles(cfg config.Config) (*render.Registry, error) {
	registry := render.DefaultRegistry()
	path := strings.TrimSpace(cfg.ResumeStylesFile)
	if path == "" {
		return registry, nil
	}
	extra, err := render.LoadStylesFile(path)
	if err != nil {
		return nil, err
	}
	registry, err = registry.With(extra...)
	if err != nil {
		return nil, fmt.Errorf("register styles from %s: %w", path, err)
	}
	telemetry.Info("bootstrap.styles_loaded", map[string]any{"path": path, "styles": len(extra)})
	return registry, nil
}

func buildStore(ctx context.Context, app *App) error {
	cfg := app.Config
	app.Store = cfg.Store
	app.Health = health.NewService(cfg.Store)

	var err error
	switch cfg.Store {
	case config.StorePostgres:
		err = buildPostgres(ctx, app)
	case config.StoreMongo:
		err = buildMongo(ctx, app)
	}
	if err != nil {
		if !isDevLike(cfg.Env) {
			return err
		}
		telemetry.Warn("bootstrap.store_unavailable", map[string]any{
			"store": cfg.Store,
			"error": err.Error(),
		})
		app.Store = config.StoreMemory
		app.Health = health.NewService(config.StoreMemory)
		app.DB = nil
		app.Mongo = nil
	}

	if app.UsersRepo == nil || app.Store == config.StoreMemory {
		app.UsersRepo = users.NewMemoryRepo()
		app.ResumesRepo = resumes.NewMemoryRepo()
	}
	return nil
}

func buildPostgres(ctx context.Context, app *App) error {
	if strings.TrimSpace(app.Config.DatabaseURL) == "" {
		return errors.New("DATABASE_URL is required for the postgres store")
	}
	sqlDB, err := db.Connect(ctx, app.Config.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		return err
	}
	version, err := db.RunMigrations(ctx, sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("run migrations: %w", err)
	}
	telemetry.Info("bootstrap.schema_ready", map[string]any{"version": version})
	app.DB = sqlDB
	app.UsersRepo = &users.PGRepo{DB: sqlDB}
	app.ResumesRepo = &resumes.PGRepo{DB: sqlDB}
	app.Health.Add(config.StorePostgres, sqlDB.PingContext)
	return nil
}

func buildMongo(ctx context.Context, app *App) error {
	store, err := docstore.Connect(ctx, app.Config.MongoURI, app.Config.MongoDatabase, docstore.DefaultOptions())
	if err != nil {
		return err
	}
	userRepo, err := users.NewMongoRepo(ctx, store.Database)
	if err != nil {
		_ = store.Close(ctx)
		return fmt.Errorf("prepare users collection: %w", err)
	}
	resumeRepo, err := resumes.NewMongoRepo(ctx, store.Database)
	if err != nil {
		_ = store.Close(ctx)
		return fmt.Errorf("prepare resumes collection: %w", err)
	}
	app.Mongo = store
	app.UsersRepo = userRepo
	app.ResumesRepo = resumeRepo
	app.Health.Add(config.StoreMongo, func(ctx context.Context) error {
		return store.Client.Ping(ctx, nil)
	})
	return nil
}

func buildServices(app *App) {
	userSvc := users.NewService(app.UsersRepo, app.Signer)
	resumeSvc := resumes.NewService(app.ResumesRepo, app.Styles)

	app.UsersService = userSvc
	app.ResumesService = resumeSvc
	app.UsersHandler = users.NewHandler(userSvc)
	app.ResumesHandler = resumes.NewHandler(resumeSvc)
	app.GoogleAuth = googleauth.NewGoogleService(googleauth.GoogleConfig{
		ClientID:     app.Config.GoogleClientID,
		ClientSecret: app.Config.GoogleClientSecret,
		RedirectURL:  app.Config.GoogleRedirectURL,
		UIRedirect:   app.Config.UIRedirectURL,
	}, userSvc)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
