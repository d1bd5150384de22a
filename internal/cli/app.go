// Package cli wires the dockyard command line: configuration, logging,
// storage and the layout engine.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/dockyard/internal/app/dock"
	"github.com/bnema/dockyard/internal/application/usecase"
	"github.com/bnema/dockyard/internal/cli/render"
	"github.com/bnema/dockyard/internal/cli/styles"
	"github.com/bnema/dockyard/internal/domain/build"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/repository"
	"github.com/bnema/dockyard/internal/infrastructure/codec"
	"github.com/bnema/dockyard/internal/infrastructure/config"
	"github.com/bnema/dockyard/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/dockyard/internal/logging"
)

// DemoContentTypes are registered when the config lists none and an
// engine needs something to open.
var DemoContentTypes = []string{"text", "terminal", "chart"}

// App holds CLI dependencies. The database is opened on first use.
type App struct {
	Config        *config.Config
	ConfigManager *config.Manager
	Theme         *styles.Theme
	BuildInfo     build.Info

	DB      *sqlite.LazyDB
	Layouts repository.LayoutRepository
	// Registry is nil when the config accepts every content type.
	Registry *dock.StaticRegistry
	Codec    *codec.JSONCodec

	SaveLayoutUC   *usecase.SaveLayoutUseCase
	LoadLayoutUC   *usecase.LoadLayoutUseCase
	ListLayoutsUC  *usecase.ListLayoutsUseCase
	DeleteLayoutUC *usecase.DeleteLayoutUseCase

	ctx        context.Context
	logCleanup func()
}

// NewApp loads the configuration and builds the storage stack.
// An empty configFile uses the XDG location.
func NewApp(configFile string) (*App, error) {
	mgr, err := config.NewManager(configFile)
	if err != nil {
		return nil, fmt.Errorf("config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logger := logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format)
	ctx := logging.WithContext(context.Background(), logger)
	logger.Debug().Str("config", mgr.ConfigFile()).Msg("configuration loaded")

	var registry *dock.StaticRegistry
	if len(cfg.Codec.ContentTypes) > 0 {
		registry = dock.NewStaticRegistry(cfg.Codec.ContentTypes...)
	}
	jsonCodec, err := newCodec(cfg, registry)
	if err != nil {
		return nil, err
	}

	db := sqlite.NewLazyDB(cfg.Storage.DatabasePath)
	layouts := sqlite.NewLazyLayoutRepository(db)

	return &App{
		Config:         cfg,
		ConfigManager:  mgr,
		Theme:          styles.NewTheme(),
		DB:             db,
		Layouts:        layouts,
		Registry:       registry,
		Codec:          jsonCodec,
		SaveLayoutUC:   usecase.NewSaveLayoutUseCase(layouts, jsonCodec),
		LoadLayoutUC:   usecase.NewLoadLayoutUseCase(layouts, jsonCodec),
		ListLayoutsUC:  usecase.NewListLayoutsUseCase(layouts),
		DeleteLayoutUC: usecase.NewDeleteLayoutUseCase(layouts),
		ctx:            ctx,
	}, nil
}

func newCodec(cfg *config.Config, registry *dock.StaticRegistry) (*codec.JSONCodec, error) {
	opts, err := cfg.CodecOptions()
	if err != nil {
		return nil, err
	}
	if registry != nil {
		opts.Registry = registry
	}
	opts.IDGenerator = entity.IDGenerator(dock.UUIDGenerator())
	return codec.NewJSONCodec(opts), nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// LogToFile sends logs to <log dir>/<name>.log instead of stderr, for
// commands that own the terminal.
func (a *App) LogToFile(name string) (string, error) {
	const (
		dirPerm  = 0o755
		filePerm = 0o644
	)
	dir, err := config.GetLogDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(dir, name+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, filePerm)
	if err != nil {
		return "", fmt.Errorf("open log file: %w", err)
	}

	logCfg := logging.DefaultConfig()
	if lvl, err := logging.ParseLevel(a.Config.Logging.Level); err == nil {
		logCfg.Level = lvl
	}
	logCfg.Format = a.Config.Logging.Format
	logCfg.TimeFormat = "15:04:05"
	logCfg.Output = f
	a.ctx = logging.WithContext(context.Background(), logging.New(logCfg))

	prev := a.logCleanup
	a.logCleanup = func() {
		if prev != nil {
			prev()
		}
		_ = f.Close()
	}
	return path, nil
}

// EngineOptions builds engine options from the config. A terminal engine
// measures in cells; otherwise the configured pixel metrics are used.
// Without configured content types the demo types are registered.
func (a *App) EngineOptions(terminal bool) (dock.Options, error) {
	cfg := a.Config
	registry := a.Registry
	if registry == nil {
		registry = dock.NewStaticRegistry(DemoContentTypes...)
	}
	jsonCodec, err := newCodec(cfg, registry)
	if err != nil {
		return dock.Options{}, err
	}

	opts := dock.Options{
		Registry:        registry,
		IDGenerator:     dock.UUIDGenerator(),
		Codec:           jsonCodec,
		PlaceholderType: cfg.Codec.PlaceholderType,
	}
	if terminal {
		opts.Metrics = render.TerminalMetrics()
		opts.Policy = render.TerminalPolicy(cfg.Layout.DefaultWeight)
		opts.Interaction = render.TerminalInteraction(cfg.Layout.CenterZone)
	} else {
		opts.Metrics = cfg.Layout.Metrics()
		opts.Policy = cfg.Layout.Policy()
		opts.Interaction = cfg.Layout.Interaction()
	}
	return opts, nil
}

// SnapshotInterval returns the debounce delay of layout autosave.
func (a *App) SnapshotInterval() time.Duration {
	return time.Duration(a.Config.Storage.SnapshotIntervalMs) * time.Millisecond
}

// Close releases all resources.
func (a *App) Close() error {
	if a.logCleanup != nil {
		a.logCleanup()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
