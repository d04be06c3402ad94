package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tasks/internal/app"
	"github.com/nhle/tasks/internal/credential"
	"github.com/nhle/tasks/internal/engine"
	"github.com/nhle/tasks/internal/logging"
	"github.com/nhle/tasks/internal/model"
	"github.com/nhle/tasks/internal/source/remote"
	"github.com/nhle/tasks/internal/store"
	appsync "github.com/nhle/tasks/internal/sync"
)

// rootOptions holds flags shared by every command.
type rootOptions struct {
	configPath string
}

func (o rootOptions) path() string {
	if o.configPath != "" {
		return o.configPath
	}
	return model.DefaultConfigPath()
}

// runtime is the wired set of components a command works with.
type runtime struct {
	cfg    *model.AppConfig
	store  *store.SQLiteStore
	prefs  *store.Preferences
	engine *engine.Engine
	logger *slog.Logger
}

// openRuntime opens the preference store and builds the engine on top of
// the remote gateway. Logs go to logOut.
func openRuntime(cfg *model.AppConfig, logOut io.Writer, engineOpts ...engine.Option) (*runtime, error) {
	logger := logging.Init(cfg.Log.Level, logOut)

	s, err := store.NewSQLiteStore(cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening preference store: %w", err)
	}

	token, err := credential.APIToken()
	if err != nil {
		logger.Warn("reading api token, continuing without", "error", err)
	}

	timeout := time.Duration(cfg.Server.TimeoutSec) * time.Second
	gateway := remote.NewGateway(cfg.Server.BaseURL, token, timeout, logging.Module("remote"))
	prefs := store.NewPreferences(s, logging.Module("store"))

	engineOpts = append([]engine.Option{engine.WithDaysAhead(cfg.StartHorizon().DaysAhead())}, engineOpts...)
	eng := engine.New(gateway, prefs, logging.Module("engine"), engineOpts...)

	return &runtime{
		cfg:    cfg,
		store:  s,
		prefs:  prefs,
		engine: eng,
		logger: logger,
	}, nil
}

// Close releases the preference store.
func (r *runtime) Close() error {
	return r.store.Close()
}

// runTUI starts the interactive terminal UI.
func runTUI(opts rootOptions) error {
	cfg, err := model.LoadConfig(opts.path())
	if err != nil {
		return err
	}

	logOut, closeLog, err := openLogFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer closeLog()

	rt, err := openRuntime(cfg, logOut)
	if err != nil {
		return err
	}
	defer rt.Close()

	refresher := appsync.New(time.Duration(cfg.Display.RefreshIntervalSec) * time.Second)
	rt.logger.Info("starting", "base_url", cfg.Server.BaseURL, "horizon", cfg.Display.Horizon)

	p := tea.NewProgram(app.New(rt.engine, refresher, logging.Module("app")), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// openLogFile routes the log to path through tea.LogToFile. An empty path
// discards the log; the terminal belongs to the UI.
func openLogFile(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := tea.LogToFile(path, "tasks")
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// openHeadless loads the config and wires a runtime logging to stderr.
func openHeadless(opts rootOptions, engineOpts ...engine.Option) (*runtime, error) {
	cfg, err := model.LoadConfig(opts.path())
	if err != nil {
		return nil, err
	}
	return openRuntime(cfg, os.Stderr, engineOpts...)
}
