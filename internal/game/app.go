package game

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/glfw/v3.3/glfw"

	"mini-64/internal/config"
	"mini-64/internal/input"
	"mini-64/internal/profiling"
)

// configInbox hands a reloaded config from the watcher goroutine to the main
// loop. It holds at most one pending config; a newer one replaces it.
type configInbox struct {
	ch chan config.Config
}

func newConfigInbox() configInbox {
	return configInbox{ch: make(chan config.Config, 1)}
}

func (ci configInbox) put(cfg config.Config) {
	for {
		select {
		case ci.ch <- cfg:
			return
		default:
		}
		// Full: discard the stale config and retry.
		select {
		case <-ci.ch:
		default:
		}
	}
}

func (ci configInbox) take() (config.Config, bool) {
	select {
	case cfg := <-ci.ch:
		return cfg, true
	default:
		return config.Config{}, false
	}
}

// App owns the main loop: event polling, frame timing, session update and
// render, and the frame limiter.
type App struct {
	window  *glfw.Window
	input   *input.Manager
	session *Session
	logger  *log.Logger

	fpsLimiter *FPSLimiter
	inbox      configInbox
	lastTime   time.Time
}

// NewApp wires a session into the main loop.
func NewApp(window *glfw.Window, im *input.Manager, session *Session, fpsLimit int, logger *log.Logger) *App {
	return &App{
		window:     window,
		input:      im,
		session:    session,
		logger:     logger,
		fpsLimiter: NewFPSLimiter(fpsLimit),
		inbox:      newConfigInbox(),
		lastTime:   time.Now(),
	}
}

// ApplyConfig stages reloaded configuration for the main loop. Safe to call
// from any goroutine; everything the config touches is mutated only between
// ticks, on the loop thread.
func (a *App) ApplyConfig(cfg config.Config) {
	a.inbox.put(cfg)
}

// Run blocks until the window closes.
func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
	a.session.Cleanup()
}

func (a *App) tick() {
	if cfg, ok := a.inbox.take(); ok {
		a.fpsLimiter.SetLimit(cfg.Window.FPSLimit)
		a.session.ApplyConfig(cfg)
	}

	profiling.ResetFrame()
	startTick := time.Now()
	now := time.Now()
	dt := now.Sub(a.lastTime).Seconds()
	a.lastTime = now

	glfw.PollEvents()

	a.session.Update(dt, a.input)
	a.session.Render(dt)

	a.window.SwapBuffers()

	if d := time.Since(startTick); d > 16*time.Millisecond {
		a.logger.Debug("slow frame", "took", d, "top", profiling.TopN(5))
	}

	a.input.PostUpdate()
	a.fpsLimiter.Wait(a.session.Paused)
}
