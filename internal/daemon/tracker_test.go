package daemon

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/1broseidon/winscope/internal/event"
	"github.com/1broseidon/winscope/internal/ipc"
	"github.com/1broseidon/winscope/internal/platform"
)

// trackerBackend implements the slice of platform.Backend the tracker
// touches; everything else panics via the embedded nil interface.
type trackerBackend struct {
	platform.Backend

	focused     *event.Stream[platform.WindowID]
	blurred     *event.Stream[platform.WindowID]
	maximized   *event.Stream[platform.WindowID]
	unmaximized *event.Stream[platform.WindowID]

	mu      sync.Mutex
	windows []platform.Window
	calls   []string
}

func newTrackerBackend(windows ...platform.Window) *trackerBackend {
	return &trackerBackend{
		focused:     event.NewStream[platform.WindowID](),
		blurred:     event.NewStream[platform.WindowID](),
		maximized:   event.NewStream[platform.WindowID](),
		unmaximized: event.NewStream[platform.WindowID](),
		windows:     windows,
	}
}

func (b *trackerBackend) setWindows(windows ...platform.Window) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.windows = windows
}

func (b *trackerBackend) record(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, name)
}

func (b *trackerBackend) WindowFocused() *event.Stream[platform.WindowID]   { return b.focused }
func (b *trackerBackend) WindowBlurred() *event.Stream[platform.WindowID]   { return b.blurred }
func (b *trackerBackend) WindowMaximized() *event.Stream[platform.WindowID] { return b.maximized }
func (b *trackerBackend) WindowUnmaximized() *event.Stream[platform.WindowID] {
	return b.unmaximized
}

func (b *trackerBackend) IsWindowFocused(ctx context.Context, id platform.WindowID) (bool, error) {
	return false, errors.New("no confirmation in tests")
}

func (b *trackerBackend) ListWindows(ctx context.Context) ([]platform.Window, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]platform.Window(nil), b.windows...), nil
}

func (b *trackerBackend) FocusWindow(ctx context.Context, id platform.WindowID) error {
	b.record("FocusWindow")
	return nil
}

func (b *trackerBackend) MaximizeWindow(ctx context.Context, id platform.WindowID) error {
	b.record("MaximizeWindow")
	return nil
}

func (b *trackerBackend) MinimizeWindow(ctx context.Context, id platform.WindowID) error {
	b.record("MinimizeWindow")
	return nil
}

func (b *trackerBackend) CloseWindow(ctx context.Context, id platform.WindowID) error {
	b.record("CloseWindow")
	return nil
}

func newTestTracker(b *trackerBackend) *Tracker {
	return NewTracker(TrackerConfig{
		Logger: slog.New(slog.DiscardHandler),
	}, b)
}

func TestReconcile_TracksNewWindows(t *testing.T) {
	b := newTrackerBackend(
		platform.Window{ID: 7, Title: "editor", Focused: true},
		platform.Window{ID: 9, Title: "terminal"},
	)
	tr := newTestTracker(b)

	tr.ReconcileNow(context.Background())

	if tr.Count() != 2 {
		t.Fatalf("expected 2 tracked windows, got %d", tr.Count())
	}
	f, ok := tr.Facade(7)
	if !ok {
		t.Fatal("window 7 not tracked")
	}
	if !f.HasFocus() {
		t.Fatal("facade did not take the initial focus snapshot")
	}
}

func TestReconcile_ClosesVanishedWindowsOnce(t *testing.T) {
	b := newTrackerBackend(platform.Window{ID: 7})
	tr := newTestTracker(b)

	tr.ReconcileNow(context.Background())
	f, ok := tr.Facade(7)
	if !ok {
		t.Fatal("window 7 not tracked")
	}

	transitions := 0
	f.MaximizeChanged().Subscribe(func(bool) { transitions++ })

	b.setWindows() // window disappears
	tr.ReconcileNow(context.Background())
	tr.ReconcileNow(context.Background()) // second pass must be a no-op

	if tr.Count() != 0 {
		t.Fatalf("expected 0 tracked windows, got %d", tr.Count())
	}

	// The facade is closed: backend events no longer reach it.
	b.maximized.Emit(7)
	if transitions != 0 {
		t.Fatalf("closed facade still received %d transitions", transitions)
	}
}

func TestReconcile_KeepsExistingFacades(t *testing.T) {
	b := newTrackerBackend(platform.Window{ID: 7})
	tr := newTestTracker(b)

	tr.ReconcileNow(context.Background())
	first, _ := tr.Facade(7)

	tr.ReconcileNow(context.Background())
	second, _ := tr.Facade(7)

	if first != second {
		t.Fatal("reconcile replaced the facade for a still-open window")
	}
}

func TestListWindows_UsesFacadeFocusState(t *testing.T) {
	b := newTrackerBackend(platform.Window{ID: 7, Title: "editor"})
	tr := newTestTracker(b)
	tr.ReconcileNow(context.Background())

	// The live event updates the facade's cache; the backend snapshot
	// still says unfocused.
	b.focused.Emit(7)

	infos, err := tr.ListWindows()
	if err != nil {
		t.Fatalf("list windows: %v", err)
	}
	if len(infos) != 1 || !infos[0].Focused {
		t.Fatalf("expected facade focus state, got %+v", infos)
	}
}

func TestIPCHandlers_RequireTrackedWindow(t *testing.T) {
	tr := newTestTracker(newTrackerBackend())

	if err := tr.FocusWindow(99); err == nil {
		t.Fatal("expected error for untracked window")
	}
	if err := tr.SetWindowState(99, ipc.StateMaximized); err == nil {
		t.Fatal("expected error for untracked window")
	}
	if err := tr.CloseWindow(99); err == nil {
		t.Fatal("expected error for untracked window")
	}
}

func TestSetWindowState_DispatchesToBackend(t *testing.T) {
	b := newTrackerBackend(platform.Window{ID: 7})
	tr := newTestTracker(b)
	tr.ReconcileNow(context.Background())

	if err := tr.SetWindowState(7, ipc.StateMaximized); err != nil {
		t.Fatalf("set state: %v", err)
	}
	if err := tr.SetWindowState(7, ipc.StateMinimized); err != nil {
		t.Fatalf("set state: %v", err)
	}
	if err := tr.SetWindowState(7, "sideways"); err == nil {
		t.Fatal("expected error for unknown state")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.calls) != 2 || b.calls[0] != "MaximizeWindow" || b.calls[1] != "MinimizeWindow" {
		t.Fatalf("backend calls = %v", b.calls)
	}
}
