package app

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/fractalterm/internal/config/watcher"
	"github.com/dshills/fractalterm/internal/input"
	"github.com/dshills/fractalterm/internal/renderer/backend"
	"github.com/dshills/fractalterm/internal/renderer/statusline"
	"github.com/dshills/fractalterm/internal/view"
)

// messageSeconds is how long status messages stay on the HUD.
const messageSeconds = 3

// Run initializes the backend and runs the frame loop until Shutdown, a
// quit command or a render failure. A quit command returns ErrQuit.
func (app *Application) Run() error {
	if app.backend == nil {
		return &InitError{Component: "backend", Err: ErrNoBackend}
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}

	var wg sync.WaitGroup
	err := app.init()
	if err == nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.inputLoop()
		}()
		app.logger.WithComponent("app").Info("running %s view", app.ActiveView().Family())
		err = app.eventLoop()
	}

	// Shutdown unblocks PollEvent so the input goroutine can exit.
	app.backend.Shutdown()
	wg.Wait()
	app.stopWatcher()

	switch {
	case err == nil:
		app.logger.WithComponent("app").Info("shut down")
	case errors.Is(err, ErrQuit):
		app.logger.WithComponent("app").Info("quit")
	default:
		app.logger.WithComponent("app").Error("%v", err)
	}
	return err
}

// inputLoop turns backend events into commands for the frame loop.
func (app *Application) inputLoop() {
	for {
		ev := app.backend.PollEvent()
		if ev.Type == backend.EventClosed {
			return
		}
		cmd := app.keymap.FromEvent(ev)
		if cmd.IsNone() {
			continue
		}
		select {
		case <-app.done:
			return
		default:
		}
		app.enqueue(cmd)
	}
}

// enqueue queues cmd without blocking. It reports false when the queue is
// full and cmd was dropped.
func (app *Application) enqueue(cmd input.Command) bool {
	select {
	case app.commands <- cmd:
		return true
	default:
		app.metrics.RecordCommandDropped()
		app.logger.WithComponent("input").Debug("dropped %s", cmd)
		return false
	}
}

// eventLoop ticks at display.fps and applies config reloads between frames.
func (app *Application) eventLoop() error {
	fps := app.cfg.Display.FPS
	ticker := time.NewTicker(frameInterval(fps))
	defer ticker.Stop()

	var reloads <-chan watcher.Reload
	if app.watcher != nil {
		reloads = app.watcher.Reloads()
	}

	for {
		select {
		case <-app.done:
			return nil

		case r, ok := <-reloads:
			if !ok {
				reloads = nil
				continue
			}
			app.handleReload(r)
			if n := app.Config().Display.FPS; n != fps {
				fps = n
				ticker.Reset(frameInterval(fps))
			}

		case <-ticker.C:
			if err := app.frame(); err != nil {
				return err
			}
		}
	}
}

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

// frame applies every queued command, advances the active view, renders
// it if needed and draws the result.
func (app *Application) frame() error {
	timer := StartTimer()

	if err := app.drainCommands(); err != nil {
		return err
	}

	v := app.ActiveView()
	v.Tick()

	compute := StartTimer()
	f, err := v.RenderIfDirty()
	if err != nil {
		return NewComponentError("view", "render", err)
	}
	if f.Computed {
		app.metrics.RecordCompute(compute.Elapsed())
	}

	app.updateStatus(v, f)

	draw := StartTimer()
	app.renderer.Draw(f.Index)
	app.metrics.RecordRender(draw.Elapsed())

	app.metrics.RecordFrame(timer.Elapsed())
	app.refreshTiming()
	return nil
}

// drainCommands applies all queued commands in arrival order.
func (app *Application) drainCommands() error {
	for {
		select {
		case cmd := <-app.commands:
			if err := app.handleCommand(cmd); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (app *Application) handleCommand(cmd input.Command) error {
	app.metrics.RecordCommand()
	app.logger.WithComponent("input").Debug("%s", cmd)

	switch cmd.Kind {
	case input.CmdQuit:
		return ErrQuit

	case input.CmdHelp:
		app.renderer.ToggleHelp()

	case input.CmdSwitchView:
		app.mu.Lock()
		app.active = 1 - app.active
		app.mu.Unlock()

	case input.CmdSize:
		// Every view follows the screen, minus the HUD row.
		gw, gh := app.renderer.GridSize()
		for _, v := range app.views {
			if err := v.Resize(gw, gh); err != nil {
				return NewComponentError("view", "resize", err)
			}
		}

	default:
		if err := app.ActiveView().Apply(cmd); err != nil {
			return NewComponentError("view", cmd.Kind.String(), err)
		}
	}
	return nil
}

func (app *Application) handleReload(r watcher.Reload) {
	log := app.logger.WithComponent("config")
	status := app.renderer.Status()
	ttl := messageSeconds * app.Config().Display.FPS

	err := r.Err
	if err == nil {
		err = app.applyConfig(r.Config)
	}
	if err != nil {
		log.Warn("reload: %v", err)
		status.SetMessage("config: "+err.Error(), statusline.MessageError, ttl)
		return
	}
	log.Info("reloaded")
	status.SetMessage("config reloaded", statusline.MessageInfo, messageSeconds*r.Config.Display.FPS)
}

func (app *Application) updateStatus(v *view.View, f view.Frame) {
	vp := v.Viewport()
	app.renderer.Status().SetSnapshot(statusline.Snapshot{
		Family:        v.Family().String(),
		CenterX:       vp.Center.X,
		CenterY:       vp.Center.Y,
		Magnification: v.Magnification(),
		Rotation:      vp.Rotation,
		Floor:         f.Floor,
		Ceil:          f.Ceil,
		Auto:          v.AutoExposure(),
		Touring:       v.Touring(),
	})
}

// refreshTiming updates the HUD timings once per fps frames with the
// averages over that window.
func (app *Application) refreshTiming() {
	snap := app.metrics.Snapshot()
	window := snap.Sub(app.lastTiming)
	if window.Frames < uint64(app.cfg.Display.FPS) {
		return
	}
	app.lastTiming = snap
	app.renderer.Status().SetTiming(statusline.Timing{
		FPS:     window.FPS(),
		Compute: window.AvgCompute(),
		Render:  window.AvgRender(),
	})
}
