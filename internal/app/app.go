// Package app wires configuration, input, the fractal views and the
// renderer into the interactive explorer and runs its frame loop.
package app

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"

	"github.com/dshills/fractalterm/internal/config"
	"github.com/dshills/fractalterm/internal/config/watcher"
	"github.com/dshills/fractalterm/internal/fractal"
	"github.com/dshills/fractalterm/internal/input"
	"github.com/dshills/fractalterm/internal/renderer"
	"github.com/dshills/fractalterm/internal/renderer/backend"
	"github.com/dshills/fractalterm/internal/view"
)

// commandQueueSize bounds the input-to-loop channel. Commands arriving when
// it is full are dropped and counted.
const commandQueueSize = 256

// Options configures the application.
type Options struct {
	// ConfigPath is the TOML file; empty uses config.DefaultPath().
	ConfigPath string
	// Julia starts on the Julia view regardless of fractal.family.
	Julia bool
	// LogLevel and LogFile override the logging section when set.
	LogLevel string
	LogFile  string
	// Watch reloads the config file when it changes.
	Watch bool
}

// Application is the interactive explorer: two views, one renderer and the
// frame loop that drives them.
type Application struct {
	mu sync.Mutex

	opts   Options
	cfg    *config.Config
	logger *Logger
	logOut io.Closer

	backend  backend.Backend
	renderer *renderer.Renderer
	keymap   *input.Keymap
	watcher  *watcher.Watcher
	metrics  *Metrics

	// views holds the Mandelbrot view at 0 and the Julia view at 1.
	views  [2]*view.View
	active int

	commands   chan input.Command
	lastTiming MetricsSnapshot

	running   atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
}

// New loads configuration and opens the session log.
func New(opts Options) (*Application, error) {
	if opts.ConfigPath == "" {
		opts.ConfigPath = config.DefaultPath()
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	return NewWithConfig(cfg, opts)
}

// NewWithConfig creates an application from an already loaded config.
func NewWithConfig(cfg *config.Config, opts Options) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}

	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	file := cfg.Logging.File
	if opts.LogFile != "" {
		file = opts.LogFile
	}
	logger, closer, err := SessionLogger(file, ParseLogLevel(level))
	if err != nil {
		return nil, &InitError{Component: "logger", Err: err}
	}

	app := &Application{
		opts:     opts,
		cfg:      cfg,
		logger:   logger,
		logOut:   closer,
		keymap:   input.DefaultKeymap(),
		metrics:  NewMetrics(),
		commands: make(chan input.Command, commandQueueSize),
		done:     make(chan struct{}),
	}
	if opts.Julia || cfg.FamilyKind() == fractal.KindJulia {
		app.active = 1
	}
	return app, nil
}

// SetBackend sets the terminal backend. It must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.mu.Lock()
	defer app.mu.Unlock()
	app.backend = b
	return nil
}

// Config returns the configuration in effect.
func (app *Application) Config() *config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.cfg
}

// Logger returns the session logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Metrics returns the frame metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Renderer returns the renderer, or nil before Run.
func (app *Application) Renderer() *renderer.Renderer {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.renderer
}

// ActiveView returns the view being shown, or nil before Run.
func (app *Application) ActiveView() *view.View {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.views[app.active]
}

// IsRunning reports whether Run is in progress.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Shutdown stops the frame loop; Run then releases the terminal. It is safe to
// call more than once and from any goroutine.
func (app *Application) Shutdown() {
	app.closeOnce.Do(func() {
		close(app.done)
	})
}

// init creates the renderer, both views and the config watcher. The
// backend must already be initialized.
func (app *Application) init() error {
	cfg := app.cfg

	r, err := renderer.New(app.backend, cfg.Charset(), rendererOptions(cfg))
	if err != nil {
		return &InitError{Component: "renderer", Err: err}
	}
	gw, gh := r.GridSize()

	var views [2]*view.View
	for i, kind := range []fractal.FamilyKind{fractal.KindMandelbrot, fractal.KindJulia} {
		opts, err := viewOptions(cfg, kind)
		if err != nil {
			return &InitError{Component: "view", Err: err}
		}
		v, err := view.New(gw, gh, opts)
		if err != nil {
			return &InitError{Component: "view", Err: err}
		}
		views[i] = v
	}

	app.mu.Lock()
	app.renderer = r
	app.views = views
	app.mu.Unlock()
	app.lastTiming = app.metrics.Snapshot()

	if app.opts.Watch && app.opts.ConfigPath != "" {
		w, err := watcher.New(app.opts.ConfigPath)
		if err != nil {
			// Live reload is optional.
			app.logger.WithComponent("config").Warn("watch %s: %v", app.opts.ConfigPath, err)
		} else {
			app.watcher = w
		}
	}
	return nil
}

func (app *Application) stopWatcher() {
	if app.watcher != nil {
		_ = app.watcher.Close()
		app.watcher = nil
	}
}

// Close releases the session log. Call it after Run returns.
func (app *Application) Close() error {
	app.Shutdown()
	if app.logOut == nil {
		return nil
	}
	err := app.logOut.Close()
	app.logOut = nil
	return err
}

// viewOptions converts cfg into the options for a view of kind.
func viewOptions(cfg *config.Config, kind fractal.FamilyKind) (view.Options, error) {
	family := fractal.Mandelbrot()
	if kind == fractal.KindJulia {
		family = fractal.Julia(cfg.JuliaSeed())
	}
	if cfg.Fractal.MaxEscape <= 0 || cfg.Fractal.MaxEscape > math.MaxUint16 {
		return view.Options{}, fmt.Errorf("max escape %d out of range", cfg.Fractal.MaxEscape)
	}

	points, err := cfg.Points()
	if err != nil {
		return view.Options{}, err
	}
	seeds, err := cfg.Seeds()
	if err != nil {
		return view.Options{}, err
	}

	d := fractal.NewDescriptor(family)
	d.MaxEscape = uint16(cfg.Fractal.MaxEscape)
	d.DefaultWidth = cfg.Fractal.DefaultWidth
	d.ElementAspectRatio = cfg.Fractal.ElementAspectRatio
	d.Threads = cfg.Fractal.Threads

	return view.Options{
		Descriptor: d,
		Motion: view.Motion{
			TargetCoef:        cfg.Motion.TargetCoef,
			Friction:          cfg.Motion.Friction,
			ZoomIncrement:     cfg.Motion.ZoomIncrement,
			VelocityRatio:     cfg.Motion.VelocityRatio,
			RotationIncrement: cfg.Motion.RotationIncrement * math.Pi / 180,
			MinWidth:          cfg.Motion.MinWidth,
		},
		Exposure: view.Exposure{
			Auto:   cfg.Exposure.Auto,
			Lower:  cfg.Exposure.Lower,
			Upper:  cfg.Exposure.Upper,
			Policy: cfg.BiasPolicy(),
		},
		Charset: cfg.Charset(),
		Points:  points,
		Seeds:   seeds,
	}, nil
}

func rendererOptions(cfg *config.Config) renderer.Options {
	return renderer.Options{
		Color:       cfg.Display.Color,
		ShowHUD:     cfg.Display.HUD,
		PaletteFrom: cfg.Display.PaletteFrom,
		PaletteTo:   cfg.Display.PaletteTo,
	}
}

// applyConfig reconfigures the running views and renderer. Nothing is
// changed when any part of cfg is rejected.
func (app *Application) applyConfig(cfg *config.Config) error {
	var opts [2]view.Options
	for i, kind := range []fractal.FamilyKind{fractal.KindMandelbrot, fractal.KindJulia} {
		o, err := viewOptions(cfg, kind)
		if err != nil {
			return err
		}
		if err := o.Descriptor.Validate(); err != nil {
			return err
		}
		opts[i] = o
	}

	prev := app.renderer.Options()
	if err := app.renderer.SetOptions(rendererOptions(cfg)); err != nil {
		return err
	}
	if err := app.renderer.SetCharset(cfg.Charset()); err != nil {
		_ = app.renderer.SetOptions(prev)
		return err
	}

	var errs []error
	gw, gh := app.renderer.GridSize()
	for i, v := range app.views {
		errs = append(errs, v.Reconfigure(opts[i]), v.Resize(gw, gh))
	}

	app.mu.Lock()
	app.cfg = cfg
	app.mu.Unlock()
	if app.opts.LogLevel == "" {
		app.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))
	}
	return errors.Join(errs...)
}
