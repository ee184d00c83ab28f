// Package app wires the terminal surface, the runtime graph and the
// configured behaviors into the graphview application and runs its
// event loop.
package app

import (
	"context"
	_ "embed"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/graphview/internal/behavior"
	"github.com/dshills/graphview/internal/config"
	"github.com/dshills/graphview/internal/event"
	"github.com/dshills/graphview/internal/graph"
	"github.com/dshills/graphview/internal/shortcut"
	"github.com/dshills/graphview/internal/surface"
)

//go:embed default.toml
var defaultConfig []byte

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty uses the
	// built-in configuration and disables live reload.
	ConfigPath string

	// Logger receives all logs. Nil means slog.Default.
	Logger *slog.Logger

	// Screen overrides the terminal screen, e.g. with a
	// tcell.SimulationScreen. Nil opens the controlling terminal.
	Screen tcell.Screen
}

// Application is the central coordinator for all graphview components.
type Application struct {
	mu       sync.Mutex
	compiled *config.Compiled
	watcher  *config.Watcher
	cancel   context.CancelFunc

	opts       Options
	logger     *slog.Logger
	term       *surface.Terminal
	graph      *graph.Graph
	controller *behavior.Controller
	keys       *shortcut.Engine
	redrawSub  *event.Subscription

	running      atomic.Bool
	quit         atomic.Bool
	ready        chan struct{}
	readyOnce    sync.Once
	shutdownOnce sync.Once
}

// New creates the application and attaches the configured behaviors.
// The terminal is not touched until Run.
func New(opts Options) (*Application, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	file, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	animation, _ := file.Graph.AnimationDuration() // validated by config.Parse

	app := &Application{
		opts:   opts,
		logger: logger,
		ready:  make(chan struct{}),
	}

	termOpts := []surface.TerminalOption{
		surface.WithTerminalLogger(logger),
		surface.WithRedraw(app.draw),
	}
	if file.Terminal.WheelStep > 0 {
		termOpts = append(termOpts, surface.WithWheelStep(file.Terminal.WheelStep))
	}
	if opts.Screen != nil {
		app.term = surface.NewTerminalWithScreen(opts.Screen, termOpts...)
	} else {
		app.term, err = surface.NewTerminal(termOpts...)
		if err != nil {
			return nil, &InitError{Component: "terminal", Err: err}
		}
	}

	app.graph = graph.New(app.term.Canvas(), graph.WithLogger(logger), graph.WithAnimation(animation))
	if err := populateDemo(app.graph); err != nil {
		app.Shutdown()
		return nil, &InitError{Component: "graph", Err: err}
	}

	app.controller = behavior.NewController(behavior.Context{Graph: app.graph, Logger: logger}, nil)
	if err := app.apply(file); err != nil {
		app.Shutdown()
		return nil, &InitError{Component: "behaviors", Err: err}
	}

	app.keys = shortcut.New(app.graph, shortcut.WithLogger(logger))
	app.keys.Bind([]shortcut.Key{"q"}, func(any) { app.Quit() })
	app.keys.Bind([]shortcut.Key{"Ctrl", "c"}, func(any) { app.Quit() })
	app.keys.Bind([]shortcut.Key{"Home"}, func(any) {
		app.graph.TranslateTo(context.Background(), graph.Point{})
	})

	app.redrawSub = app.graph.On(event.TopicViewportChanged, func(context.Context, any) error {
		app.term.Interrupt()
		return nil
	})

	logger.Info("[app] initialized", "config", opts.ConfigPath, "behaviors", app.controller.Len())
	return app, nil
}

func loadConfig(path string) (*config.File, error) {
	if path == "" {
		return config.Parse("default.toml", defaultConfig)
	}
	return config.Load(path)
}

// apply compiles f and reconciles the attached behaviors with it.
// The graph and terminal sections are only read at startup.
func (app *Application) apply(f *config.File) error {
	compiled, err := config.Compile(f, app.logger)
	if err != nil {
		return err
	}
	err = app.controller.Reconcile(compiled.Specs)

	app.mu.Lock()
	old := app.compiled
	app.compiled = compiled
	app.mu.Unlock()
	old.Close()

	if app.running.Load() {
		app.term.Interrupt()
	}
	return err
}

// Graph returns the runtime graph.
func (app *Application) Graph() *graph.Graph {
	return app.graph
}

// Controller returns the behavior controller.
func (app *Application) Controller() *behavior.Controller {
	return app.controller
}

// Ready is closed once Run has initialized the terminal.
func (app *Application) Ready() <-chan struct{} {
	return app.ready
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Run initializes the terminal and processes input until ctx is cancelled
// or the user quits. Quitting returns ErrQuit.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.term.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}

	if app.opts.ConfigPath != "" {
		w, err := config.NewWatcher(app.opts.ConfigPath, app.reload, config.WithWatcherLogger(app.logger))
		if err != nil {
			app.logger.Warn("[app] config reload disabled", "path", app.opts.ConfigPath, "error", err)
		} else {
			app.mu.Lock()
			app.watcher = w
			app.mu.Unlock()
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	app.mu.Lock()
	app.cancel = cancel
	app.mu.Unlock()
	if app.quit.Load() {
		cancel()
	}

	app.draw()
	app.readyOnce.Do(func() { close(app.ready) })

	err := app.term.Run(runCtx, app.graph)
	if app.quit.Load() {
		return ErrQuit
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (app *Application) reload(f *config.File) {
	if err := app.apply(f); err != nil {
		app.logger.Warn("[app] config applied with errors", "error", err)
	}
}

// Quit stops Run. Run then returns ErrQuit.
func (app *Application) Quit() {
	app.quit.Store(true)

	app.mu.Lock()
	cancel := app.cancel
	app.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Shutdown releases every component in reverse initialization order.
// Safe to call more than once.
func (app *Application) Shutdown() {
	app.shutdownOnce.Do(app.shutdown)
}

func (app *Application) shutdown() {
	app.mu.Lock()
	watcher := app.watcher
	compiled := app.compiled
	app.watcher = nil
	app.compiled = nil
	app.mu.Unlock()

	if watcher != nil {
		if err := watcher.Close(); err != nil {
			app.logger.Warn("[app] closing config watcher", "error", err)
		}
	}
	if app.keys != nil {
		app.keys.Destroy()
	}
	if app.controller != nil {
		app.controller.Destroy()
	}
	compiled.Close()
	if app.graph != nil {
		app.graph.Off(app.redrawSub)
		app.graph.Destroy()
	}
	app.term.Shutdown()
	app.logger.Info("[app] shut down")
}
