package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

const (
	stateMaximizedHorz = "_NET_WM_STATE_MAXIMIZED_HORZ"
	stateMaximizedVert = "_NET_WM_STATE_MAXIMIZED_VERT"
	stateFullscreen    = "_NET_WM_STATE_FULLSCREEN"
	stateHidden        = "_NET_WM_STATE_HIDDEN"
)

// Client describes one top-level application window as the window manager
// sees it.
type Client struct {
	ID        xproto.Window
	PID       int
	AppID     string
	Title     string
	X         int
	Y         int
	Width     int
	Height    int
	Maximized bool
}

// ListClients returns the EWMH client list with metadata and geometry,
// filtered to normal application windows.
func (c *Connection) ListClients() ([]Client, error) {
	wins, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}

	clients := make([]Client, 0, len(wins))
	for _, win := range wins {
		if !c.IsNormalWindow(win) {
			continue
		}

		cl := Client{ID: win}

		if name, err := ewmh.WmNameGet(c.XUtil, win); err == nil {
			cl.Title = name
		}
		if pid, err := ewmh.WmPidGet(c.XUtil, win); err == nil {
			cl.PID = int(pid)
		}
		if class, err := icccm.WmClassGet(c.XUtil, win); err == nil {
			cl.AppID = class.Class
		}
		if x, y, w, h, err := c.WindowGeometry(win); err == nil {
			cl.X, cl.Y, cl.Width, cl.Height = x, y, w, h
		}
		cl.Maximized = c.IsMaximized(win)

		clients = append(clients, cl)
	}

	return clients, nil
}

// GetActiveWindow returns the EWMH active window, 0 when none is focused.
func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// FocusWindow activates and raises a window using _NET_ACTIVE_WINDOW.
// Sends a client message to the root window per EWMH spec. We build the
// message manually because the xgbutil ewmh helpers panic on this library
// version (uint vs int type assertion).
func (c *Connection) FocusWindow(windowID xproto.Window) error {
	atomReply, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len("_NET_ACTIVE_WINDOW")), "_NET_ACTIVE_WINDOW").Reply()
	if err != nil {
		return fmt.Errorf("failed to intern _NET_ACTIVE_WINDOW: %w", err)
	}

	const sourceIndication = 2 // pager/direct action
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   atomReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{sourceIndication, 0, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

// MaximizeWindow adds both maximized states to a window.
func (c *Connection) MaximizeWindow(windowID xproto.Window) error {
	if err := ewmh.WmStateReqExtra(c.XUtil, windowID, ewmh.StateAdd,
		stateMaximizedHorz, stateMaximizedVert, 2); err != nil {
		return fmt.Errorf("failed to maximize window: %w", err)
	}
	return nil
}

// UnmaximizeWindow removes both maximized states from a window.
func (c *Connection) UnmaximizeWindow(windowID xproto.Window) error {
	if err := ewmh.WmStateReqExtra(c.XUtil, windowID, ewmh.StateRemove,
		stateMaximizedHorz, stateMaximizedVert, 2); err != nil {
		return fmt.Errorf("failed to unmaximize window: %w", err)
	}
	return nil
}

// IsMaximized reports whether a window carries both maximized states.
func (c *Connection) IsMaximized(windowID xproto.Window) bool {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return false
	}

	horz, vert := false, false
	for _, state := range states {
		switch state {
		case stateMaximizedHorz:
			horz = true
		case stateMaximizedVert:
			vert = true
		}
	}
	return horz && vert
}

// ToggleFullScreen toggles the fullscreen state of a window.
func (c *Connection) ToggleFullScreen(windowID xproto.Window) error {
	if err := ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateToggle, stateFullscreen); err != nil {
		return fmt.Errorf("failed to toggle fullscreen: %w", err)
	}
	return nil
}

// MinimizeWindow iconifies a window. Sends a WM_CHANGE_STATE client
// message per ICCCM; built manually like FocusWindow.
func (c *Connection) MinimizeWindow(windowID xproto.Window) error {
	atomReply, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len("WM_CHANGE_STATE")), "WM_CHANGE_STATE").Reply()
	if err != nil {
		return fmt.Errorf("failed to intern WM_CHANGE_STATE: %w", err)
	}

	const iconicState = 3
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   atomReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{iconicState, 0, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

// ShowWindow maps an iconified or hidden window and activates it.
func (c *Connection) ShowWindow(windowID xproto.Window) error {
	if err := xproto.MapWindowChecked(c.XUtil.Conn(), windowID).Check(); err != nil {
		return fmt.Errorf("failed to map window: %w", err)
	}
	return c.FocusWindow(windowID)
}

// CloseWindow asks the window manager to close a window gracefully.
func (c *Connection) CloseWindow(windowID xproto.Window) error {
	if err := ewmh.CloseWindow(c.XUtil, windowID); err != nil {
		return fmt.Errorf("failed to close window: %w", err)
	}
	return nil
}

// MoveResizeWindow moves and resizes a window to the specified geometry
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	// A maximized window ignores geometry requests
	if c.IsMaximized(windowID) {
		_ = c.UnmaximizeWindow(windowID)
	}

	win := xwindow.New(c.XUtil, windowID)

	// Use EWMH MoveResize for better WM compatibility
	err := ewmh.MoveresizeWindow(
		c.XUtil,
		windowID,
		x, y, width, height,
	)

	if err != nil {
		// Fallback to direct window manipulation
		win.MoveResize(x, y, width, height)
		return nil
	}

	return nil
}

// SetWindowName sets the EWMH window title.
func (c *Connection) SetWindowName(windowID xproto.Window, name string) error {
	if err := ewmh.WmNameSet(c.XUtil, windowID, name); err != nil {
		return fmt.Errorf("failed to set window name: %w", err)
	}
	return nil
}

// WindowGeometry returns a window's position in root coordinates and its size.
func (c *Connection) WindowGeometry(windowID xproto.Window) (x, y, width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to get geometry: %w", err)
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		windowID,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to translate coordinates: %w", err)
	}

	return int(translate.DstX), int(translate.DstY), int(geom.Width), int(geom.Height), nil
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	// Check for normal window type
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" {
			return true
		}
		// Reject desktop, dock, splash, etc.
		if t == "_NET_WM_WINDOW_TYPE_DESKTOP" ||
			t == "_NET_WM_WINDOW_TYPE_DOCK" ||
			t == "_NET_WM_WINDOW_TYPE_SPLASH" ||
			t == "_NET_WM_WINDOW_TYPE_NOTIFICATION" {
			return false
		}
	}

	// If no specific type is set, assume it's normal
	return len(types) == 0
}
