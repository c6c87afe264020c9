package platform

import (
	"context"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/winscope/internal/event"
	"github.com/1broseidon/winscope/internal/x11"
)

// LinuxBackend implements WindowBackend on top of an X11 connection. One
// backend serves every window in the session; its event streams are fed
// from a property watcher pumping the X event loop.
type LinuxBackend struct {
	conn    *x11.Connection
	watcher *x11.Watcher

	focused     *event.Stream[WindowID]
	blurred     *event.Stream[WindowID]
	maximized   *event.Stream[WindowID]
	unmaximized *event.Stream[WindowID]
}

var _ WindowBackend = (*LinuxBackend)(nil)

// NewLinuxBackend connects to the X server and wires the watcher into the
// four event streams. Call Run to start delivering events.
func NewLinuxBackend() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}

	b := &LinuxBackend{
		conn:        conn,
		focused:     event.NewStream[WindowID](),
		blurred:     event.NewStream[WindowID](),
		maximized:   event.NewStream[WindowID](),
		unmaximized: event.NewStream[WindowID](),
	}

	w := x11.NewWatcher(conn)
	w.OnFocusChange = func(prev, next xproto.Window) {
		// Blur before focus so subscribers see a consistent ordering.
		if prev != 0 {
			b.blurred.Emit(WindowID(prev))
		}
		if next != 0 {
			b.focused.Emit(WindowID(next))
		}
	}
	w.OnMaximize = func(id xproto.Window) { b.maximized.Emit(WindowID(id)) }
	w.OnUnmaximize = func(id xproto.Window) { b.unmaximized.Emit(WindowID(id)) }
	b.watcher = w

	return b, nil
}

// Run registers the property handlers and pumps X events until the context
// is canceled. Blocking.
func (b *LinuxBackend) Run(ctx context.Context) error {
	if err := b.watcher.Start(); err != nil {
		return fmt.Errorf("failed to start window watcher: %w", err)
	}

	done := make(chan struct{})
	go func() {
		b.watcher.Run()
		close(done)
	}()

	select {
	case <-ctx.Done():
		b.watcher.Stop()
		<-done
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Close disconnects from the X server. The event streams stay open; they
// simply stop emitting.
func (b *LinuxBackend) Close() {
	b.conn.Close()
}

func (b *LinuxBackend) WindowFocused() *event.Stream[WindowID]     { return b.focused }
func (b *LinuxBackend) WindowBlurred() *event.Stream[WindowID]     { return b.blurred }
func (b *LinuxBackend) WindowMaximized() *event.Stream[WindowID]   { return b.maximized }
func (b *LinuxBackend) WindowUnmaximized() *event.Stream[WindowID] { return b.unmaximized }

func (b *LinuxBackend) IsWindowFocused(ctx context.Context, id WindowID) (bool, error) {
	active, err := b.conn.GetActiveWindow()
	if err != nil {
		return false, fmt.Errorf("failed to get active window: %w", err)
	}
	return WindowID(active) == id, nil
}

func (b *LinuxBackend) ListWindows(ctx context.Context) ([]Window, error) {
	clients, err := b.conn.ListClients()
	if err != nil {
		return nil, err
	}

	active, _ := b.conn.GetActiveWindow()

	windows := make([]Window, 0, len(clients))
	for _, cl := range clients {
		windows = append(windows, Window{
			ID:        WindowID(cl.ID),
			PID:       cl.PID,
			AppID:     cl.AppID,
			Title:     cl.Title,
			Bounds:    Rect{X: cl.X, Y: cl.Y, Width: cl.Width, Height: cl.Height},
			Focused:   cl.ID == active && active != 0,
			Maximized: cl.Maximized,
		})
	}
	return windows, nil
}

func (b *LinuxBackend) ActiveWindow(ctx context.Context) (WindowID, error) {
	active, err := b.conn.GetActiveWindow()
	if err != nil {
		return 0, fmt.Errorf("failed to get active window: %w", err)
	}
	return WindowID(active), nil
}

func (b *LinuxBackend) FocusWindow(ctx context.Context, id WindowID) error {
	return b.conn.FocusWindow(xproto.Window(id))
}

func (b *LinuxBackend) MaximizeWindow(ctx context.Context, id WindowID) error {
	return b.conn.MaximizeWindow(xproto.Window(id))
}

func (b *LinuxBackend) UnmaximizeWindow(ctx context.Context, id WindowID) error {
	return b.conn.UnmaximizeWindow(xproto.Window(id))
}

func (b *LinuxBackend) MinimizeWindow(ctx context.Context, id WindowID) error {
	return b.conn.MinimizeWindow(xproto.Window(id))
}

func (b *LinuxBackend) ShowWindow(ctx context.Context, id WindowID) error {
	return b.conn.ShowWindow(xproto.Window(id))
}

func (b *LinuxBackend) CloseWindow(ctx context.Context, id WindowID) error {
	return b.conn.CloseWindow(xproto.Window(id))
}

func (b *LinuxBackend) ToggleFullScreen(ctx context.Context, id WindowID) error {
	return b.conn.ToggleFullScreen(xproto.Window(id))
}

// HandleTitleBarDoubleClick follows the common desktop convention of
// toggling the maximized state.
func (b *LinuxBackend) HandleTitleBarDoubleClick(ctx context.Context, id WindowID) error {
	if b.conn.IsMaximized(xproto.Window(id)) {
		return b.conn.UnmaximizeWindow(xproto.Window(id))
	}
	return b.conn.MaximizeWindow(xproto.Window(id))
}

func (b *LinuxBackend) MoveResizeWindow(ctx context.Context, id WindowID, bounds Rect) error {
	return b.conn.MoveResizeWindow(xproto.Window(id), bounds.X, bounds.Y, bounds.Width, bounds.Height)
}

// SetRepresentedFilename surfaces the file in the only place X11 offers:
// the window title.
func (b *LinuxBackend) SetRepresentedFilename(ctx context.Context, id WindowID, filename string) error {
	return b.conn.SetWindowName(xproto.Window(id), filename)
}

func (b *LinuxBackend) SetDocumentEdited(ctx context.Context, id WindowID, edited bool) error {
	return ErrNotSupported
}
