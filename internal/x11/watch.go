package x11

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// Watcher translates X11 property changes into window state callbacks.
// It listens for _NET_ACTIVE_WINDOW on the root window and _NET_WM_STATE
// on every client, and deduplicates repeated property writes so each
// callback fires once per actual transition.
//
// Callbacks run on the X event loop goroutine and must not block.
type Watcher struct {
	conn *Connection

	// OnFocusChange fires when the active window changes. prev is 0 when
	// no window was focused before; next is 0 when focus was dropped.
	OnFocusChange func(prev, next xproto.Window)
	// OnMaximize and OnUnmaximize fire on maximized-state transitions.
	OnMaximize   func(id xproto.Window)
	OnUnmaximize func(id xproto.Window)

	atomActive     xproto.Atom
	atomClientList xproto.Atom
	atomWmState    xproto.Atom

	mu        sync.Mutex
	active    xproto.Window
	maximized map[xproto.Window]bool
	tracked   map[xproto.Window]bool
}

// NewWatcher prepares a watcher on an existing connection. Call Start to
// register the X event handlers, then Run to pump events.
func NewWatcher(conn *Connection) *Watcher {
	return &Watcher{
		conn:      conn,
		maximized: make(map[xproto.Window]bool),
		tracked:   make(map[xproto.Window]bool),
	}
}

// Start interns the atoms, seeds the current focus and maximize state, and
// registers the root property handler plus one per current client.
func (w *Watcher) Start() error {
	var err error
	if w.atomActive, err = xprop.Atm(w.conn.XUtil, "_NET_ACTIVE_WINDOW"); err != nil {
		return fmt.Errorf("failed to intern _NET_ACTIVE_WINDOW: %w", err)
	}
	if w.atomClientList, err = xprop.Atm(w.conn.XUtil, "_NET_CLIENT_LIST"); err != nil {
		return fmt.Errorf("failed to intern _NET_CLIENT_LIST: %w", err)
	}
	if w.atomWmState, err = xprop.Atm(w.conn.XUtil, "_NET_WM_STATE"); err != nil {
		return fmt.Errorf("failed to intern _NET_WM_STATE: %w", err)
	}

	root := xwindow.New(w.conn.XUtil, w.conn.Root)
	if err := root.Listen(xproto.EventMaskPropertyChange); err != nil {
		return fmt.Errorf("failed to listen on root window: %w", err)
	}

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		switch ev.Atom {
		case w.atomActive:
			w.activeChanged()
		case w.atomClientList:
			w.syncClients()
		}
	}).Connect(w.conn.XUtil, w.conn.Root)

	// Seed state so the first events report real transitions.
	if active, err := w.conn.GetActiveWindow(); err == nil {
		w.mu.Lock()
		w.active = active
		w.mu.Unlock()
	}
	w.syncClients()

	return nil
}

// Run pumps the X event loop until Stop is called. Blocking.
func (w *Watcher) Run() {
	w.conn.EventLoop()
}

// Stop asks a blocked Run to return.
func (w *Watcher) Stop() {
	w.conn.StopEventLoop()
}

func (w *Watcher) activeChanged() {
	next, err := w.conn.GetActiveWindow()
	if err != nil {
		return
	}

	w.mu.Lock()
	prev := w.active
	if next == prev {
		w.mu.Unlock()
		return
	}
	w.active = next
	w.mu.Unlock()

	if w.OnFocusChange != nil {
		w.OnFocusChange(prev, next)
	}
}

// syncClients diffs the EWMH client list against the tracked set: new
// clients get a _NET_WM_STATE listener, vanished ones are forgotten.
func (w *Watcher) syncClients() {
	clients, err := ewmh.ClientListGet(w.conn.XUtil)
	if err != nil {
		return
	}

	current := make(map[xproto.Window]bool, len(clients))
	for _, win := range clients {
		current[win] = true
	}

	w.mu.Lock()
	var added []xproto.Window
	for win := range current {
		if !w.tracked[win] {
			w.tracked[win] = true
			added = append(added, win)
		}
	}
	for win := range w.tracked {
		if !current[win] {
			delete(w.tracked, win)
			delete(w.maximized, win)
		}
	}
	w.mu.Unlock()

	for _, win := range added {
		w.trackClient(win)
	}
}

func (w *Watcher) trackClient(win xproto.Window) {
	if err := xwindow.New(w.conn.XUtil, win).Listen(xproto.EventMaskPropertyChange); err != nil {
		// The window may already be gone; the next client list sync
		// drops it.
		return
	}

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		if ev.Atom == w.atomWmState {
			w.stateChanged(ev.Window)
		}
	}).Connect(w.conn.XUtil, win)

	w.mu.Lock()
	w.maximized[win] = w.conn.IsMaximized(win)
	w.mu.Unlock()
}

// stateChanged re-reads the maximized state and fires a callback only on
// an actual transition. Window managers rewrite _NET_WM_STATE for many
// reasons; the dedup keeps the streams quiet.
func (w *Watcher) stateChanged(win xproto.Window) {
	now := w.conn.IsMaximized(win)

	w.mu.Lock()
	was, known := w.maximized[win]
	if known && was == now {
		w.mu.Unlock()
		return
	}
	w.maximized[win] = now
	w.mu.Unlock()

	if now {
		if w.OnMaximize != nil {
			w.OnMaximize(win)
		}
	} else if known {
		if w.OnUnmaximize != nil {
			w.OnUnmaximize(win)
		}
	}
}
