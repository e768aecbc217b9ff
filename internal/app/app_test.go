package app

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/dshills/fractalterm/internal/config"
	"github.com/dshills/fractalterm/internal/config/watcher"
	"github.com/dshills/fractalterm/internal/fractal"
	"github.com/dshills/fractalterm/internal/input"
	"github.com/dshills/fractalterm/internal/renderer/backend"
)

// newTestApp returns an initialized application drawing to a null backend
// without starting the loop.
func newTestApp(t *testing.T, cfg *config.Config, opts Options, w, h int) (*Application, *backend.NullBackend) {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	app, err := NewWithConfig(cfg, opts)
	if err != nil {
		t.Fatalf("NewWithConfig() error: %v", err)
	}
	b := backend.NewNullBackend(w, h)
	if err := app.SetBackend(b); err != nil {
		t.Fatalf("SetBackend() error: %v", err)
	}
	if err := b.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if err := app.init(); err != nil {
		t.Fatalf("init() error: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app, b
}

func mustFrame(t *testing.T, app *Application) {
	t.Helper()
	if err := app.frame(); err != nil {
		t.Fatalf("frame() error: %v", err)
	}
}

func TestNewWithConfig_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Display.FPS = 0

	_, err := NewWithConfig(cfg, Options{})
	var initErr *InitError
	if !errors.As(err, &initErr) || initErr.Component != "config" {
		t.Fatalf("NewWithConfig() error = %v, want config InitError", err)
	}
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("error %v should match ErrInvalidConfig", err)
	}
}

func TestFrameDrawsFractalAndHUD(t *testing.T) {
	app, b := newTestApp(t, nil, Options{}, 100, 20)
	mustFrame(t, app)

	if b.Shows() != 1 {
		t.Errorf("Shows() = %d, want 1", b.Shows())
	}
	if strings.TrimSpace(b.Line(10)) == "" {
		t.Error("fractal rows should not be blank")
	}
	if hud := b.Line(19); !strings.Contains(hud, "mandelbrot") {
		t.Errorf("HUD = %q, want family name", hud)
	}
	if gw, gh := app.ActiveView().GridSize(); gw != 100 || gh != 19 {
		t.Errorf("view grid = (%d, %d), want (100, 19)", gw, gh)
	}
}

func TestQuitCommand(t *testing.T) {
	app, _ := newTestApp(t, nil, Options{}, 40, 10)
	app.enqueue(input.Simple(input.CmdQuit))

	if err := app.frame(); !errors.Is(err, ErrQuit) {
		t.Errorf("frame() = %v, want ErrQuit", err)
	}
}

func TestSwitchView(t *testing.T) {
	app, b := newTestApp(t, nil, Options{}, 100, 10)
	mandelbrot := app.ActiveView()

	app.enqueue(input.Simple(input.CmdSwitchView))
	mustFrame(t, app)

	if got := app.ActiveView().Family(); got != fractal.KindJulia {
		t.Fatalf("active family = %v, want julia", got)
	}
	if hud := b.Line(9); !strings.Contains(hud, "julia") {
		t.Errorf("HUD = %q, want julia", hud)
	}

	app.enqueue(input.Simple(input.CmdSwitchView))
	mustFrame(t, app)
	if app.ActiveView() != mandelbrot {
		t.Error("second switch should return to the same Mandelbrot view")
	}
}

func TestStartOnJulia(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(*config.Config)
		opts Options
	}{
		{"flag", func(*config.Config) {}, Options{Julia: true}},
		{"config", func(c *config.Config) { c.Fractal.Family = "julia" }, Options{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.cfg(cfg)
			app, _ := newTestApp(t, cfg, tt.opts, 20, 5)
			if got := app.ActiveView().Family(); got != fractal.KindJulia {
				t.Errorf("active family = %v, want julia", got)
			}
		})
	}
}

func TestHelpCommand(t *testing.T) {
	app, _ := newTestApp(t, nil, Options{}, 60, 20)
	app.enqueue(input.Simple(input.CmdHelp))
	mustFrame(t, app)

	if !app.Renderer().ShowingHelp() {
		t.Error("help should be visible after CmdHelp")
	}
}

func TestResizeCommandResizesAllViews(t *testing.T) {
	app, b := newTestApp(t, nil, Options{}, 40, 10)
	b.Resize(50, 20)
	app.enqueue(input.Size(50, 20))
	mustFrame(t, app)

	for i, v := range app.views {
		if gw, gh := v.GridSize(); gw != 50 || gh != 19 {
			t.Errorf("view %d grid = (%d, %d), want (50, 19)", i, gw, gh)
		}
	}
}

func TestCommandsDrainedEachFrame(t *testing.T) {
	app, _ := newTestApp(t, nil, Options{}, 40, 10)
	for i := 0; i < 3; i++ {
		app.enqueue(input.Zoom(-1))
	}
	mustFrame(t, app)

	if len(app.commands) != 0 {
		t.Errorf("queued commands = %d, want 0", len(app.commands))
	}
	if got := app.Metrics().Snapshot().Commands; got != 3 {
		t.Errorf("Commands = %d, want 3", got)
	}
	if m := app.ActiveView().Magnification(); m <= 1 {
		t.Errorf("Magnification() = %v, want zoomed in", m)
	}
}

func TestEnqueueDropsWhenFull(t *testing.T) {
	app, _ := newTestApp(t, nil, Options{}, 10, 5)
	for i := 0; i < commandQueueSize; i++ {
		if !app.enqueue(input.Zoom(1)) {
			t.Fatalf("enqueue %d dropped before the queue was full", i)
		}
	}
	if app.enqueue(input.Zoom(1)) {
		t.Error("enqueue on a full queue should drop")
	}
	if got := app.Metrics().Snapshot().DroppedCommands; got != 1 {
		t.Errorf("DroppedCommands = %d, want 1", got)
	}
}

func TestTimingRefreshedOncePerSecondOfFrames(t *testing.T) {
	cfg := config.Default()
	cfg.Display.FPS = 3
	app, _ := newTestApp(t, cfg, Options{}, 20, 5)

	mustFrame(t, app)
	mustFrame(t, app)
	if app.lastTiming.Frames != 0 {
		t.Fatalf("timing refreshed after 2 frames, want 3")
	}
	mustFrame(t, app)
	if app.lastTiming.Frames != 3 {
		t.Errorf("lastTiming.Frames = %d, want 3", app.lastTiming.Frames)
	}
	if !strings.Contains(app.Renderer().Status().Right(), "fps") {
		t.Errorf("Right() = %q", app.Renderer().Status().Right())
	}
}

func TestApplyConfig(t *testing.T) {
	app, _ := newTestApp(t, nil, Options{}, 30, 10)
	mustFrame(t, app)

	cfg := config.Default()
	cfg.Display.HUD = false
	cfg.Display.Color = false
	cfg.Exposure.Auto = false
	cfg.Logging.Level = "debug"
	if err := app.applyConfig(cfg); err != nil {
		t.Fatalf("applyConfig() error: %v", err)
	}

	if app.Renderer().Options().ShowHUD {
		t.Error("renderer should hide the HUD")
	}
	for i, v := range app.views {
		if _, gh := v.GridSize(); gh != 10 {
			t.Errorf("view %d height = %d, want 10 without HUD", i, gh)
		}
		if v.AutoExposure() {
			t.Errorf("view %d should have autoexposure off", i)
		}
	}
	if app.Config() != cfg {
		t.Error("Config() should return the applied config")
	}
	if app.Logger().Level() != LogLevelDebug {
		t.Errorf("logger level = %v, want DEBUG", app.Logger().Level())
	}
}

func TestApplyConfigRejected(t *testing.T) {
	app, _ := newTestApp(t, nil, Options{}, 30, 10)
	before := app.Config()
	prevOpts := app.Renderer().Options()

	cfg := config.Default()
	cfg.Display.PaletteFrom = "not a color"
	if err := app.applyConfig(cfg); err == nil {
		t.Fatal("applyConfig() should reject an invalid palette")
	}
	if app.Config() != before {
		t.Error("rejected config should not replace the current one")
	}
	if app.Renderer().Options() != prevOpts {
		t.Error("rejected config should leave renderer options alone")
	}
}

func TestLogLevelFlagSurvivesReload(t *testing.T) {
	app, _ := newTestApp(t, nil, Options{LogLevel: "error"}, 20, 5)

	cfg := config.Default()
	cfg.Logging.Level = "debug"
	if err := app.applyConfig(cfg); err != nil {
		t.Fatalf("applyConfig() error: %v", err)
	}
	if app.Logger().Level() != LogLevelError {
		t.Errorf("logger level = %v, want ERROR from the flag", app.Logger().Level())
	}
}

func TestHandleReload(t *testing.T) {
	app, _ := newTestApp(t, nil, Options{}, 30, 10)

	app.handleReload(watcher.Reload{Err: errors.New("bad toml")})
	if msg := app.Renderer().Status().Message(); msg != "config: bad toml" {
		t.Errorf("Message() = %q, want reload error", msg)
	}

	app.handleReload(watcher.Reload{Config: config.Default()})
	if msg := app.Renderer().Status().Message(); msg != "config reloaded" {
		t.Errorf("Message() = %q, want reload notice", msg)
	}
}

func TestViewOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Motion.RotationIncrement = 90
	cfg.Fractal.Threads = 3
	cfg.Fractal.JuliaSeed = []float64{0.25, -0.5}

	opts, err := viewOptions(cfg, fractal.KindJulia)
	if err != nil {
		t.Fatalf("viewOptions() error: %v", err)
	}
	if math.Abs(opts.Motion.RotationIncrement-math.Pi/2) > 1e-12 {
		t.Errorf("RotationIncrement = %v, want pi/2", opts.Motion.RotationIncrement)
	}
	if opts.Descriptor.Family.Seed != complex(0.25, -0.5) {
		t.Errorf("Seed = %v, want (0.25-0.5i)", opts.Descriptor.Family.Seed)
	}
	if opts.Descriptor.Threads != 3 {
		t.Errorf("Threads = %d, want 3", opts.Descriptor.Threads)
	}
	if len(opts.Points) != 10 || len(opts.Seeds) != 10 {
		t.Errorf("points/seeds = %d/%d, want 10/10", len(opts.Points), len(opts.Seeds))
	}

	cfg.Fractal.MaxEscape = 70000
	if _, err := viewOptions(cfg, fractal.KindMandelbrot); err == nil {
		t.Error("viewOptions() should reject max escape beyond uint16")
	}
}

func runAsync(app *Application) <-chan error {
	errc := make(chan error, 1)
	go func() { errc <- app.Run() }()
	return errc
}

func waitRun(t *testing.T, errc <-chan error) error {
	t.Helper()
	select {
	case err := <-errc:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return")
		return nil
	}
}

func TestRunQuitKey(t *testing.T) {
	app, err := NewWithConfig(config.Default(), Options{})
	if err != nil {
		t.Fatalf("NewWithConfig() error: %v", err)
	}
	defer app.Close()

	b := backend.NewNullBackend(30, 8)
	if err := app.SetBackend(b); err != nil {
		t.Fatalf("SetBackend() error: %v", err)
	}

	errc := runAsync(app)
	b.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'q'})

	if err := waitRun(t, errc); !errors.Is(err, ErrQuit) {
		t.Errorf("Run() = %v, want ErrQuit", err)
	}
	if app.IsRunning() {
		t.Error("IsRunning() should be false after Run returns")
	}
}

func TestRunShutdown(t *testing.T) {
	app, err := NewWithConfig(config.Default(), Options{})
	if err != nil {
		t.Fatalf("NewWithConfig() error: %v", err)
	}
	defer app.Close()
	if err := app.SetBackend(backend.NewNullBackend(20, 5)); err != nil {
		t.Fatalf("SetBackend() error: %v", err)
	}

	errc := runAsync(app)
	time.Sleep(50 * time.Millisecond)
	app.Shutdown()

	if err := waitRun(t, errc); err != nil {
		t.Errorf("Run() = %v, want nil after Shutdown", err)
	}
}

func TestRunWithoutBackend(t *testing.T) {
	app, err := NewWithConfig(config.Default(), Options{})
	if err != nil {
		t.Fatalf("NewWithConfig() error: %v", err)
	}
	defer app.Close()

	if err := app.Run(); !errors.Is(err, ErrNoBackend) {
		t.Errorf("Run() = %v, want ErrNoBackend", err)
	}
}
