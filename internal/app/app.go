// Package app wires configuration, logging, storage and the console
// session together and manages their lifecycle.
package app

import (
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/docedit/internal/config"
	"github.com/dshills/docedit/internal/console"
	"github.com/dshills/docedit/internal/engine/history"
	"github.com/dshills/docedit/internal/export"
	"github.com/dshills/docedit/internal/logging"
	"github.com/dshills/docedit/internal/persist"
	"github.com/dshills/docedit/internal/storage"
	"github.com/dshills/docedit/internal/vfs"
	"github.com/dshills/docedit/internal/wordcount"
)

// ErrAlreadyRunning indicates Run was called twice.
var ErrAlreadyRunning = errors.New("application already running")

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. When empty the
	// optional docedit.toml in the working directory is used.
	ConfigPath string

	// LogLevel overrides the configured log level.
	LogLevel string

	// Stdin and Stdout default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer

	// LogOutput replaces the configured log file.
	LogOutput io.Writer

	// ConfigOptions are passed to config.Load after the file option.
	ConfigOptions []config.Option
}

// Application owns one editing session and the resources behind it.
type Application struct {
	config  *config.Config
	logger  *logging.Logger
	logFile *os.File
	session string

	policy  wordcount.Policy
	lua     *wordcount.LuaPolicy
	cloud   storage.Backend
	console *console.Session

	running  atomic.Bool
	shutdown sync.Once
	opts     Options
}

// New creates an Application. Any error leaves no resources open.
func New(opts Options) (*Application, error) {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	app := &Application{opts: opts, session: uuid.NewString()}
	if err := app.bootstrap(); err != nil {
		app.Shutdown()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config
	cfgOpts := append([]config.Option{config.WithFile(app.opts.ConfigPath)}, app.opts.ConfigOptions...)
	cfg, err := config.Load(cfgOpts...)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	if app.opts.LogLevel != "" {
		cfg.Logging.Level = app.opts.LogLevel
	}
	app.config = cfg

	// 2. Logging
	out := app.opts.LogOutput
	if out == nil {
		if cfg.Logging.File == "" {
			out = os.Stderr
		} else {
			f, err := logging.OpenFile(cfg.Logging.File)
			if err != nil {
				return &InitError{Component: "logging", Err: err}
			}
			app.logFile = f
			out = f
		}
	}
	app.logger = logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Output: out,
		Prefix: "docedit",
	}).WithField("session", app.session)

	app.logger.Info("Document Editor started")
	for _, src := range cfg.Sources() {
		app.logger.Debug("Configuration loaded from %s", src)
	}
	for _, key := range cfg.Unknown() {
		app.logger.Warn("Unknown configuration setting: %s", key)
	}

	// 3. Word count policy
	app.policy = wordcount.Default()
	if cfg.WordCount.Script != "" {
		lua, err := wordcount.LoadLuaPolicy(cfg.WordCount.Script,
			wordcount.WithTimeout(cfg.WordCount.Timeout),
			wordcount.WithLogger(app.logger.WithComponent("wordcount")))
		if err != nil {
			return &InitError{Component: "word count", Err: err}
		}
		app.lua = lua
		app.policy = lua
	}

	// 4. Storage
	fsys := vfs.NewOSFS()
	backend := storage.NewDirBackend(cfg.Storage.Service, cfg.Storage.Dir,
		storage.WithDirFS(fsys),
		storage.WithDirLogger(app.logger.WithComponent("storage")))
	app.cloud = backend
	if cfg.Storage.Cache {
		app.cloud = storage.NewCache(backend, app.logger.WithComponent("storage"))
	}

	if err := fsys.MkdirAll(cfg.Export.Dir, 0o755); err != nil {
		return &InitError{Component: "export", Err: err}
	}

	// 5. Console session
	app.console = console.NewSession(app.opts.Stdin, app.opts.Stdout,
		console.WithLogger(app.logger),
		console.WithHistory(history.NewHistory(history.WithLogger(app.logger.WithComponent("history")))),
		console.WithStore(persist.NewStore(persist.WithFS(fsys), persist.WithLogger(app.logger))),
		console.WithCloud(app.cloud),
		console.WithPolicy(app.policy),
		console.WithExportDir(cfg.Export.Dir),
		console.WithExportOptions(
			export.WithWriter(export.FileWriter(fsys)),
			export.WithLogger(app.logger.WithComponent("export")),
			export.WithAccent(cfg.Export.Accent),
			export.WithPageLayout(cfg.PDFOptions()),
		),
	)
	return nil
}

// Config returns the loaded configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// SessionID returns the identifier attached to every log line.
func (app *Application) SessionID() string {
	return app.session
}

// Session returns the console session.
func (app *Application) Session() *console.Session {
	return app.console
}

// Run drives the console session until the user exits.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)
	return app.console.Run()
}

// Shutdown releases the Lua state and the log file. It is safe to call
// more than once.
func (app *Application) Shutdown() {
	app.shutdown.Do(func() {
		if app.lua != nil {
			app.lua.Close()
		}
		if app.logger != nil {
			app.logger.Info("Document Editor stopped")
		}
		if app.logFile != nil {
			_ = app.logFile.Close()
		}
	})
}

// InitError reports which component failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}
