package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/andrescamacho/redcycle-go/internal/adapters/metrics"
	"github.com/andrescamacho/redcycle-go/internal/adapters/persistence"
	"github.com/andrescamacho/redcycle-go/internal/application/common"
	appSession "github.com/andrescamacho/redcycle-go/internal/application/session"
	"github.com/andrescamacho/redcycle-go/internal/application/setup"
	"github.com/andrescamacho/redcycle-go/internal/domain/session"
	"github.com/andrescamacho/redcycle-go/internal/domain/shared"
	"github.com/andrescamacho/redcycle-go/internal/infrastructure/config"
	"github.com/andrescamacho/redcycle-go/internal/infrastructure/database"
	"github.com/andrescamacho/redcycle-go/internal/infrastructure/logging"
	"github.com/andrescamacho/redcycle-go/internal/infrastructure/pidfile"
)

// App is one wired engine instance: configuration, the live session and the
// mediator every command goes through.
type App struct {
	Config    *config.Config
	Lifecycle *appSession.Lifecycle
	Mediator  common.Mediator
	Logger    common.Logger

	listProfiles func(ctx context.Context) ([]string, error)
	sessionFile  string // set by the file backend
	closers      []func() error
}

// appOptions adjusts wiring for a single invocation
type appOptions struct {
	forceMetrics bool
}

// openApp is swapped in tests for an app over an in-memory repository
var openApp = openConfiguredApp

// Send dispatches a request with the app logger in context
func (a *App) Send(ctx context.Context, request common.Request) (common.Response, error) {
	return a.Mediator.Send(common.WithLogger(ctx, a.Logger), request)
}

// Close releases the session lock, database connection and log file
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// openConfiguredApp wires the engine from config, user preferences and flags.
// Priority: CLI flags > user config defaults > env / config file > defaults
func openConfiguredApp(ctx context.Context, opts appOptions) (*App, error) {
	cfg, err := loadEffectiveConfig()
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg}

	slogger, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	app.closers = append(app.closers, logCloser.Close)
	app.Logger = logging.NewSlogAdapter(slogger)

	if cfg.Session.Backend != "postgres" {
		lock := pidfile.New(cfg.Session.LockFile)
		if err := lock.Acquire(); err != nil {
			_ = app.Close()
			return nil, err
		}
		app.closers = append(app.closers, lock.Release)
	}

	repo, err := app.openRepository(cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	if err := app.wire(ctx, repo, cfg.Metrics.Enabled || opts.forceMetrics); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

// loadEffectiveConfig merges config sources with the user preferences and
// global flags
func loadEffectiveConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if handler, err := config.NewUserConfigHandler(); err == nil {
		if userCfg, err := handler.Load(); err == nil {
			userCfg.Apply(cfg)
		}
	}

	if profile != "" {
		cfg.Session.Profile = profile
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	return cfg, nil
}

func (a *App) openRepository(cfg *config.Config) (session.Repository, error) {
	if cfg.Session.Backend == "file" {
		repo := persistence.NewFileSessionRepository(cfg.Session.FilePath)
		a.sessionFile = repo.Path()
		return repo, nil
	}

	dbCfg := cfg.Database.ForBackend(cfg.Session.Backend)
	if dbCfg.OnDisk() {
		if err := os.MkdirAll(filepath.Dir(dbCfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := database.NewConnection(&dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.closers = append(a.closers, func() error { return database.Close(db) })

	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	repo := persistence.NewGormSessionRepository(db, cfg.Session.Profile, shared.NewRealClock())
	a.listProfiles = repo.ListProfiles
	return repo, nil
}

// wire registers metrics collectors when enabled, restores the session and
// builds the mediator
func (a *App) wire(ctx context.Context, repo session.Repository, enableMetrics bool) error {
	var commandMetrics *metrics.CommandMetricsCollector
	if enableMetrics {
		namespace := metrics.DefaultNamespace
		if a.Config != nil && a.Config.Metrics.Namespace != "" {
			namespace = a.Config.Metrics.Namespace
		}
		metrics.InitRegistry(namespace)

		recycling := metrics.NewRecyclingMetricsCollector()
		if err := recycling.Register(); err != nil {
			return fmt.Errorf("failed to register recycling metrics: %w", err)
		}
		metrics.SetGlobalRecyclingCollector(recycling)

		commandMetrics = metrics.NewCommandMetricsCollector()
		if err := commandMetrics.Register(); err != nil {
			return fmt.Errorf("failed to register command metrics: %w", err)
		}
	}

	a.Lifecycle = appSession.NewLifecycle(repo)
	a.Lifecycle.Init(common.WithLogger(ctx, a.Logger))

	mediator, err := setup.NewHandlerRegistry(a.Lifecycle, commandMetrics).CreateConfiguredMediator()
	if err != nil {
		return fmt.Errorf("failed to create mediator: %w", err)
	}
	a.Mediator = mediator
	return nil
}

// withApp opens the app for one command and closes it afterwards
func withApp(ctx context.Context, opts appOptions, fn func(app *App) error) error {
	app, err := openApp(ctx, opts)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}
