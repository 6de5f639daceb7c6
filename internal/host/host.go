// Package host drives systems through their lifecycle.
//
// Run calls OnInit on every system once, then runs a frame loop paced at the
// configured rate. Each frame executes the console lines queued since the last
// frame, calls OnUpdate on every system and draws the open debug windows. When
// the context is cancelled or quit is requested, OnExit runs once per system.
// All lifecycle calls and all command handlers run on the goroutine that called
// Run, so they never overlap.
package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"k9console/internal/console"
	"k9console/internal/logger"
	"k9console/internal/ui"
	"k9console/pkg/consoletypes"
)

const queueSize = 256

var (
	// ErrStopped is returned for lines submitted after, or still queued at, shutdown.
	ErrStopped = errors.New("host stopped")
	// ErrQueueFull is returned when the console queue cannot take another line.
	ErrQueueFull = errors.New("console queue full")
	// ErrAlreadyRunning is returned by Run and AddSystem once Run has started.
	ErrAlreadyRunning = errors.New("host already running")
)

// DuplicateSystemError is returned by AddSystem for a UUID already added.
type DuplicateSystemError struct {
	ID   uuid.UUID
	Name string
}

func (e *DuplicateSystemError) Error() string {
	return fmt.Sprintf("system %s already added (uuid %s)", e.Name, e.ID)
}

// Options configures a Host.
type Options struct {
	MaxFPS     int       // Frame rate cap, unlimited when zero or negative
	Theme      *ui.Theme // Debug window theme, plain when nil
	DrawOutput io.Writer // Destination of rendered windows, discarded when nil
}

type request struct {
	line string
	done chan error
}

type boundSystem struct {
	system consoletypes.System
	log    *log.Logger
}

// Host owns the console and the systems it drives.
type Host struct {
	console *console.Console
	systems []boundSystem
	ids     map[uuid.UUID]string

	limiter *rate.Limiter
	theme   atomic.Pointer[ui.Theme]
	surface *ui.TextSurface
	drawOut io.Writer
	drawn   string

	mu      sync.Mutex
	queue   chan request
	stopped bool

	running atomic.Bool
	quit    atomic.Bool
	frames  atomic.Uint64
	log     *log.Logger
}

// New creates a host around c and registers the quit command on it.
func New(c *console.Console, opts Options) *Host {
	h := &Host{
		console: c,
		ids:     make(map[uuid.UUID]string),
		limiter: rate.NewLimiter(fpsLimit(opts.MaxFPS), 1),
		surface: ui.NewTextSurface(opts.Theme),
		drawOut: opts.DrawOutput,
		queue:   make(chan request, queueSize),
		log:     logger.NewStyledLogger("host"),
	}

	c.Commands().RegisterFunc("quit", "Stop the frame loop and exit.", consoletypes.ParamSchema{},
		func(ctx consoletypes.ExecutionContext, _ consoletypes.TypedArgs) error {
			ctx.Logger().Info("Quit requested")
			h.Stop()
			return nil
		})

	return h
}

func fpsLimit(maxFPS int) rate.Limit {
	if maxFPS <= 0 {
		return rate.Inf
	}
	return rate.Limit(maxFPS)
}

// SetMaxFPS changes the frame rate cap. It is safe to call while running.
func (h *Host) SetMaxFPS(maxFPS int) {
	h.limiter.SetLimit(fpsLimit(maxFPS))
}

// MaxFPS returns the current frame rate cap, 0 when unlimited.
func (h *Host) MaxFPS() int {
	limit := h.limiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return int(limit)
}

// SetTheme switches the debug window theme from the next frame on. It is safe
// to call while running.
func (h *Host) SetTheme(theme *ui.Theme) {
	if theme != nil {
		h.theme.Store(theme)
	}
}

// Console returns the console the host dispatches to.
func (h *Host) Console() *console.Console {
	return h.console
}

// AddSystem appends a system. Systems are initialized, updated and exited in
// the order they were added.
func (h *Host) AddSystem(s consoletypes.System) error {
	if h.running.Load() {
		return ErrAlreadyRunning
	}
	if name, exists := h.ids[s.UUID()]; exists {
		return &DuplicateSystemError{ID: s.UUID(), Name: name}
	}

	h.ids[s.UUID()] = s.Name()
	h.systems = append(h.systems, boundSystem{
		system: s,
		log:    logger.NewStyledLogger(s.Name()),
	})
	h.log.Debug("System added", "system", s.Name(), "uuid", s.UUID())
	return nil
}

// Submit queues a console line for the next frame. The returned channel
// receives the line's result once it ran, or ErrStopped if it never will.
// It is safe to call from any goroutine.
func (h *Host) Submit(line string) <-chan error {
	done := make(chan error, 1)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		done <- ErrStopped
		return done
	}
	select {
	case h.queue <- request{line: line, done: done}:
	default:
		done <- ErrQueueFull
	}
	return done
}

// Execute submits line and waits for its result.
func (h *Host) Execute(ctx context.Context, line string) error {
	select {
	case err := <-h.Submit(line):
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop asks the frame loop to exit after the current frame.
func (h *Host) Stop() {
	h.quit.Store(true)
}

// Frames returns the number of frames run so far.
func (h *Host) Frames() uint64 {
	return h.frames.Load()
}

// Run drives the systems until ctx is cancelled or Stop is called. If a system
// fails to initialize, the systems initialized before it are exited and the
// error is returned.
func (h *Host) Run(ctx context.Context) error {
	if !h.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer h.shutdownQueue()

	start := time.Now()
	h.log.Info("Starting", "systems", len(h.systems), "max_fps", float64(h.limiter.Limit()))

	initialized, err := h.initSystems(start)
	if err != nil {
		h.exitSystems(initialized, start, time.Now())
		return err
	}

	prev := start
	for !h.quit.Load() {
		if err := h.limiter.Wait(ctx); err != nil {
			break
		}
		if ctx.Err() != nil {
			break
		}

		now := time.Now()
		frame := h.frames.Add(1)

		h.drainQueue()
		for _, bs := range h.systems {
			bs.system.OnUpdate(&consoletypes.FrameContext{
				Frame:   frame,
				Delta:   now.Sub(prev),
				Elapsed: now.Sub(start),
				Now:     now,
				Logger:  bs.log,
			})
		}
		h.drawWindows()
		prev = now
	}

	h.exitSystems(h.systems, start, prev)
	h.log.Info("Stopped", "frames", h.frames.Load())
	return nil
}

func (h *Host) initSystems(start time.Time) ([]boundSystem, error) {
	for i, bs := range h.systems {
		rc := &consoletypes.RegistrationContext{
			Commands: h.console.Commands(),
			Windows:  h.console.Windows(),
			Frame:    &consoletypes.FrameContext{Now: start, Logger: bs.log},
		}
		if err := bs.system.OnInit(rc); err != nil {
			h.log.Error("System failed to initialize", "system", bs.system.Name(), "error", err)
			return h.systems[:i], fmt.Errorf("init %s: %w", bs.system.Name(), err)
		}
		h.log.Debug("System initialized", "system", bs.system.Name())
	}
	return h.systems, nil
}

func (h *Host) exitSystems(systems []boundSystem, start, last time.Time) {
	now := time.Now()
	for _, bs := range systems {
		bs.system.OnExit(&consoletypes.FrameContext{
			Frame:   h.frames.Load(),
			Delta:   now.Sub(last),
			Elapsed: now.Sub(start),
			Now:     now,
			Logger:  bs.log,
		})
	}
}

// drainQueue runs the lines queued so far, one at a time. Lines queued after a
// quit stay in the queue and fail with ErrStopped at shutdown.
func (h *Host) drainQueue() {
	for {
		if h.quit.Load() {
			return
		}
		select {
		case req := <-h.queue:
			req.done <- h.console.Execute(req.line)
		default:
			return
		}
	}
}

func (h *Host) shutdownQueue() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stopped = true
	for {
		select {
		case req := <-h.queue:
			req.done <- ErrStopped
		default:
			return
		}
	}
}

func (h *Host) drawWindows() {
	if theme := h.theme.Swap(nil); theme != nil {
		h.surface.SetTheme(theme)
		h.drawn = ""
	}
	h.surface.Reset()
	for _, name := range h.console.Windows().OpenNames() {
		h.surface.Begin(name)
		h.console.Windows().Draw(name, h.surface)
	}

	rendered := ""
	if !h.surface.Empty() {
		rendered = h.surface.Render()
	}
	if rendered == h.drawn {
		return
	}
	h.drawn = rendered
	if h.drawOut != nil && rendered != "" {
		_, _ = fmt.Fprintln(h.drawOut, rendered)
	}
	logger.Trace("Windows redrawn", "open", len(h.console.Windows().OpenNames()))
}
