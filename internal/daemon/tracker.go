// Package daemon tracks the session's windows: it owns one facade per
// window, logs their boolean transitions, and reconciles the set against
// the backend on an interval.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/winscope/internal/ipc"
	"github.com/1broseidon/winscope/internal/platform"
	"github.com/1broseidon/winscope/internal/window"
)

// TrackerConfig holds configuration for the tracker.
type TrackerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Tracker discovers windows and maintains one facade per window.
type Tracker struct {
	backend  platform.Backend
	interval time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	facades map[platform.WindowID]*window.Facade
}

// NewTracker creates a tracker over the given backend.
func NewTracker(cfg TrackerConfig, backend platform.Backend) *Tracker {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	return &Tracker{
		backend:  backend,
		interval: interval,
		logger:   cfg.Logger,
		facades:  make(map[platform.WindowID]*window.Facade),
	}
}

// Run performs an initial sync and then reconciles on the interval.
// Blocks until the context is cancelled; all facades are closed on exit.
func (t *Tracker) Run(ctx context.Context) {
	t.logger.Info("tracker started", "interval", t.interval)
	t.reconcile(ctx)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.closeAll()
			t.logger.Info("tracker stopped")
			return
		case <-ticker.C:
			t.reconcile(ctx)
		}
	}
}

// ReconcileNow triggers an immediate reconciliation pass.
func (t *Tracker) ReconcileNow(ctx context.Context) {
	t.reconcile(ctx)
}

// reconcile diffs the backend's window list against the tracked facades:
// new windows get a facade, vanished windows get exactly one Close.
func (t *Tracker) reconcile(ctx context.Context) {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			t.logger.Error("tracker panic recovered", "error", err)
		}
	}()

	windows, err := t.backend.ListWindows(ctx)
	if err != nil {
		t.logger.Error("tracker: failed to list windows", "error", err)
		return
	}

	current := make(map[platform.WindowID]platform.Window, len(windows))
	for _, w := range windows {
		current[w.ID] = w
	}

	t.mu.Lock()
	var opened []platform.Window
	for id, w := range current {
		if _, ok := t.facades[id]; !ok {
			opened = append(opened, w)
		}
	}
	var closed []*window.Facade
	for id, f := range t.facades {
		if _, ok := current[id]; !ok {
			closed = append(closed, f)
			delete(t.facades, id)
		}
	}
	t.mu.Unlock()

	for _, f := range closed {
		t.logger.Info("window gone", "window_id", f.ID())
		f.Close()
	}
	for _, w := range opened {
		t.track(ctx, w)
	}
}

// track creates and registers the facade for a newly seen window.
func (t *Tracker) track(ctx context.Context, w platform.Window) {
	f, err := window.New(ctx, w.ID, &window.Configuration{}, t.backend, w.Focused)
	if err != nil {
		t.logger.Error("tracker: failed to create facade",
			"window_id", w.ID,
			"error", err)
		return
	}

	id := w.ID
	f.FocusChanged().Subscribe(func(focused bool) {
		t.logger.Debug("focus changed", "window_id", id, "focused", focused)
	})
	f.MaximizeChanged().Subscribe(func(maximized bool) {
		t.logger.Debug("maximize changed", "window_id", id, "maximized", maximized)
	})

	t.mu.Lock()
	if _, ok := t.facades[id]; ok {
		// A concurrent pass beat us; keep the first facade.
		t.mu.Unlock()
		f.Close()
		return
	}
	t.facades[id] = f
	t.mu.Unlock()

	t.logger.Info("window tracked",
		"window_id", w.ID,
		"app_id", w.AppID,
		"title", w.Title)
}

// closeAll closes every tracked facade.
func (t *Tracker) closeAll() {
	t.mu.Lock()
	facades := make([]*window.Facade, 0, len(t.facades))
	for id, f := range t.facades {
		facades = append(facades, f)
		delete(t.facades, id)
	}
	t.mu.Unlock()

	for _, f := range facades {
		f.Close()
	}
}

// Facade returns the facade for a window, if tracked.
func (t *Tracker) Facade(id platform.WindowID) (*window.Facade, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	f, ok := t.facades[id]
	return f, ok
}

// Count returns the number of tracked windows.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.facades)
}

// --- ipc.Handler ---

var _ ipc.Handler = (*Tracker)(nil)

// ListWindows reports the backend's windows with focus state from the
// tracked facades where available.
func (t *Tracker) ListWindows() ([]ipc.WindowInfo, error) {
	windows, err := t.backend.ListWindows(context.Background())
	if err != nil {
		return nil, err
	}

	infos := make([]ipc.WindowInfo, 0, len(windows))
	for _, w := range windows {
		focused := w.Focused
		if f, ok := t.Facade(w.ID); ok {
			focused = f.HasFocus()
		}
		infos = append(infos, ipc.WindowInfo{
			ID:        uint32(w.ID),
			PID:       w.PID,
			AppID:     w.AppID,
			Title:     w.Title,
			X:         w.Bounds.X,
			Y:         w.Bounds.Y,
			Width:     w.Bounds.Width,
			Height:    w.Bounds.Height,
			Focused:   focused,
			Maximized: w.Maximized,
		})
	}
	return infos, nil
}

func (t *Tracker) FocusWindow(id uint32) error {
	f, ok := t.Facade(platform.WindowID(id))
	if !ok {
		return fmt.Errorf("window %d not tracked", id)
	}
	return f.Focus(context.Background())
}

func (t *Tracker) SetWindowState(id uint32, state string) error {
	f, ok := t.Facade(platform.WindowID(id))
	if !ok {
		return fmt.Errorf("window %d not tracked", id)
	}

	ctx := context.Background()
	switch state {
	case ipc.StateMaximized:
		return f.Maximize(ctx)
	case ipc.StateUnmaximized:
		return f.Unmaximize(ctx)
	case ipc.StateMinimized:
		return f.Minimize(ctx)
	case ipc.StateFullscreen:
		return f.ToggleFullScreen(ctx)
	default:
		return fmt.Errorf("unknown window state %q", state)
	}
}

func (t *Tracker) CloseWindow(id uint32) error {
	f, ok := t.Facade(platform.WindowID(id))
	if !ok {
		return fmt.Errorf("window %d not tracked", id)
	}
	return f.CloseWindow(context.Background())
}
