package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/acsportal/internal/portal/directory"
	httpapi "github.com/aussiebroadwan/acsportal/internal/portal/http"
	"github.com/aussiebroadwan/acsportal/internal/portal/news"
	"github.com/aussiebroadwan/acsportal/internal/portal/service"
	"github.com/aussiebroadwan/acsportal/internal/portal/store"
	"github.com/aussiebroadwan/acsportal/internal/portal/store/drivers/redis"
	"github.com/aussiebroadwan/acsportal/internal/portal/store/drivers/sqlite"
	"github.com/aussiebroadwan/acsportal/pkg/cryptox"
	"github.com/aussiebroadwan/acsportal/pkg/jwtx"
	"github.com/aussiebroadwan/acsportal/pkg/slogx"
	"golang.org/x/sync/errgroup"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the portal server together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db         store.Store
	kv         store.KV
	closeKV    func() error
	keyManager *jwtx.KeyManager

	directory *directory.Directory
	hub       *directory.Hub

	authService         *service.AuthService
	policy              *service.Policy
	tokenService        *service.TokenService
	memberService       *service.MemberService
	indicatorService    *service.IndicatorService
	newsService         *service.NewsService
	housekeepingService *service.HousekeepingService
	keyRotationService  *service.KeyRotationService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "acs-portal",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)
	if err := cryptox.LoadPepper(); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	ctx := slogx.WithContext(context.Background(), app.logger)
	if err := app.initKV(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	keyManager, err := InitSessionKeys(ctx, app.cfg, app.db, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.keyManager = keyManager

	app.initServices()
	app.indicatorService.SeedDefaults(ctx)
	app.initHTTP()

	return app, nil
}

// Run serves until SIGINT/SIGTERM or until the server fails. The HTTP
// server and the directory reducer share one errgroup.
func (app *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	app.housekeepingService.Start()
	app.logger.Info("acs portal starting", "port", app.cfg.Port, "version", BuildVersion)

	g.Go(func() error {
		return app.directory.Run(slogx.WithContext(ctx, app.logger), app.hub)
	})

	g.Go(func() error {
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		app.logger.Info("shutdown requested", "cause", context.Cause(ctx))
		return app.Shutdown()
	})

	return g.Wait()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down acs portal...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if app.closeKV != nil {
		if err := app.closeKV(); err != nil {
			app.logger.Error("error closing kv backend", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("acs portal stopped")
	return nil
}

// initDatabase opens the SQLite database and applies migrations
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initKV picks the key-value backend for revocations and the news cache.
func (app *Application) initKV(ctx context.Context) error {
	switch app.cfg.KVBackend {
	case "redis":
		if app.cfg.RedisURL == "" {
			return errors.New("KV_BACKEND=redis requires REDIS_URL")
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		kv, err := redis.NewKV(pingCtx, app.cfg.RedisURL, "acsportal:")
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.kv = kv
		app.closeKV = kv.Close
	case "sqlite", "":
		app.kv = app.db.KV()
	default:
		return fmt.Errorf("unknown KV_BACKEND %q", app.cfg.KVBackend)
	}

	app.logger.Info("kv backend ready", "backend", app.cfg.KVBackend)
	return nil
}

func (app *Application) initServices() {
	app.directory = directory.New()
	app.hub = directory.NewHub(app.db.Members())

	app.policy = &service.Policy{
		MasterPassword:   app.cfg.MasterPassword,
		MasterTOTPSecret: app.cfg.MasterTOTPSecret,
	}
	if app.cfg.MasterPassword == "" {
		app.logger.Warn("PORTAL_MASTER_PASSWORD is not set, master password escalation is disabled")
	}

	app.authService = &service.AuthService{Directory: app.directory}
	app.tokenService = &service.TokenService{
		KeyManager: app.keyManager,
		KV:         app.kv,
		Issuer:     app.cfg.Issuer,
		TTL:        app.cfg.SessionTTL,
	}
	app.memberService = &service.MemberService{
		Store:  app.db,
		Hub:    app.hub,
		Policy: app.policy,
	}
	app.indicatorService = &service.IndicatorService{Store: app.db}
	app.newsService = &service.NewsService{
		Fetcher: news.NewClient(news.Config{
			BaseURL: app.cfg.NewsBaseURL,
			APIKey:  app.cfg.NewsAPIKey,
			Model:   app.cfg.NewsModel,
		}),
		KV:  app.kv,
		TTL: app.cfg.NewsCacheTTL,
	}

	app.keyRotationService = &service.KeyRotationService{
		KeyManager: app.keyManager,
		KeyPrefix:  keyPrefix,
		Grace:      app.cfg.KeyGrace,
	}
	var signingKeys store.SigningKeys
	if app.cfg.KeyStorage != "ephemeral" {
		app.keyRotationService.Store = app.db
		signingKeys = app.db.SigningKeys()
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.kv,
		signingKeys,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		app.keyManager.Verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.Directory = app.directory
	router.PayslipURL = app.cfg.PayslipURL
	router.AuthService = app.authService
	router.Policy = app.policy
	router.TokenService = app.tokenService
	router.MemberService = app.memberService
	router.IndicatorService = app.indicatorService
	router.NewsService = app.newsService
	router.KeyRotationService = app.keyRotationService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
