// Package window implements the per-window scoping facade: it binds every
// outgoing operation of a shared multi-window backend to one window id and
// narrows the backend's global id-tagged event streams to two boolean
// streams for that window.
package window

import (
	"context"
	"errors"
	"sync"

	"github.com/1broseidon/winscope/internal/event"
	"github.com/1broseidon/winscope/internal/platform"
)

var (
	// ErrInvalidWindowID is returned when a facade is constructed with a
	// zero window id.
	ErrInvalidWindowID = errors.New("window: invalid window id")
	// ErrMissingConfiguration is returned when a facade is constructed
	// without a configuration.
	ErrMissingConfiguration = errors.New("window: missing configuration")
	// ErrMissingBackend is returned when a facade is constructed without
	// a backend.
	ErrMissingBackend = errors.New("window: missing backend")
)

type closer interface {
	Close()
}

// Facade presents one window of a multi-window backend as a standalone
// window: operations are bound to its id and the backend's global event
// streams are narrowed to this window's boolean transitions.
//
// One facade exists per window, created with the window and closed with
// it. The backend and its streams are shared and never owned by a facade.
type Facade struct {
	id      platform.WindowID
	config  *Configuration
	backend platform.Backend

	focusChanged    *event.Stream[bool]
	maximizeChanged *event.Stream[bool]
	scoped          []closer

	mu       sync.Mutex
	hasFocus bool
	// liveSeen is set once any live focus event has been applied; a late
	// async focus confirmation never overwrites a newer live value.
	liveSeen bool
	closed   bool

	focusSub  *event.Subscription
	closeOnce sync.Once
}

// New constructs the facade for the given window. initialFocus is the
// immediately-available platform snapshot (best effort when several
// windows share the process); the authoritative per-window answer is
// fetched asynchronously from the backend and applied unless a live
// focus event arrived first.
func New(ctx context.Context, id platform.WindowID, config *Configuration, backend platform.Backend, initialFocus bool) (*Facade, error) {
	if id == 0 {
		return nil, ErrInvalidWindowID
	}
	if config == nil {
		return nil, ErrMissingConfiguration
	}
	if backend == nil {
		return nil, ErrMissingBackend
	}

	f := &Facade{
		id:       id,
		config:   config,
		backend:  backend,
		hasFocus: initialFocus,
	}

	// Event scoping first: the focus cache subscribes to its output.
	f.focusChanged = f.scopeBool(backend.WindowFocused(), backend.WindowBlurred())
	f.maximizeChanged = f.scopeBool(backend.WindowMaximized(), backend.WindowUnmaximized())

	// Live events overwrite the cache immediately and synchronously.
	f.focusSub = f.focusChanged.Subscribe(func(focused bool) {
		f.mu.Lock()
		f.hasFocus = focused
		f.liveSeen = true
		f.mu.Unlock()
	})

	// One-shot authoritative confirmation. Errors are the backend's to
	// report elsewhere; the cache keeps its current value on failure.
	go func() {
		focused, err := backend.IsWindowFocused(ctx, id)
		if err != nil {
			return
		}
		f.mu.Lock()
		if !f.liveSeen && !f.closed {
			f.hasFocus = focused
		}
		f.mu.Unlock()
	}()

	return f, nil
}

// scopeBool narrows a positive/negative pair of id-tagged streams to this
// window and merges them into a single boolean stream preserving arrival
// order. Every qualifying backend event produces exactly one emission.
func (f *Facade) scopeBool(positive, negative *event.Stream[platform.WindowID]) *event.Stream[bool] {
	mine := func(id platform.WindowID) bool { return id == f.id }
	on := event.Map(event.Filter(positive, mine), func(platform.WindowID) bool { return true })
	off := event.Map(event.Filter(negative, mine), func(platform.WindowID) bool { return false })
	merged := event.Merge(on, off)
	f.scoped = append(f.scoped, on, off, merged)
	return merged
}

// ID returns the window id supplied at construction.
func (f *Facade) ID() platform.WindowID {
	return f.id
}

// Configuration returns the launch configuration supplied at construction.
func (f *Facade) Configuration() *Configuration {
	return f.config
}

// HasFocus reports the cached focus state. It never blocks.
func (f *Facade) HasFocus() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasFocus
}

// FocusChanged is the window's boolean focus stream: true on focus,
// false on blur.
func (f *Facade) FocusChanged() *event.Stream[bool] {
	return f.focusChanged
}

// MaximizeChanged is the window's boolean maximize stream: true on
// maximize, false on unmaximize.
func (f *Facade) MaximizeChanged() *event.Stream[bool] {
	return f.maximizeChanged
}

// Close releases the facade's focus subscription and its scoped streams.
// Safe to call more than once; after Close no further events update the
// cache. The shared backend is left untouched.
func (f *Facade) Close() {
	f.closeOnce.Do(func() {
		f.mu.Lock()
		f.closed = true
		f.mu.Unlock()

		f.focusSub.Close()
		for _, s := range f.scoped {
			s.Close()
		}
	})
}

// --- forwarded operations ---
//
// Each call injects the facade's window id (leading argument or options
// field) and otherwise passes arguments and results through unchanged.

func (f *Facade) Focus(ctx context.Context) error {
	return f.backend.FocusWindow(ctx, f.id)
}

func (f *Facade) Maximize(ctx context.Context) error {
	return f.backend.MaximizeWindow(ctx, f.id)
}

func (f *Facade) Unmaximize(ctx context.Context) error {
	return f.backend.UnmaximizeWindow(ctx, f.id)
}

func (f *Facade) Minimize(ctx context.Context) error {
	return f.backend.MinimizeWindow(ctx, f.id)
}

func (f *Facade) Show(ctx context.Context) error {
	return f.backend.ShowWindow(ctx, f.id)
}

// CloseWindow asks the backend to close the underlying window. Closing
// the facade itself is Close.
func (f *Facade) CloseWindow(ctx context.Context) error {
	return f.backend.CloseWindow(ctx, f.id)
}

func (f *Facade) ToggleFullScreen(ctx context.Context) error {
	return f.backend.ToggleFullScreen(ctx, f.id)
}

func (f *Facade) HandleTitleBarDoubleClick(ctx context.Context) error {
	return f.backend.HandleTitleBarDoubleClick(ctx, f.id)
}

func (f *Facade) MoveResize(ctx context.Context, bounds platform.Rect) error {
	return f.backend.MoveResizeWindow(ctx, f.id, bounds)
}

func (f *Facade) SetRepresentedFilename(ctx context.Context, filename string) error {
	return f.backend.SetRepresentedFilename(ctx, f.id, filename)
}

func (f *Facade) SetDocumentEdited(ctx context.Context, edited bool) error {
	return f.backend.SetDocumentEdited(ctx, f.id, edited)
}

func (f *Facade) ShowMessageBox(ctx context.Context, opts platform.MessageBoxOptions) (platform.MessageBoxResult, error) {
	opts.WindowID = f.id
	return f.backend.ShowMessageBox(ctx, opts)
}

func (f *Facade) ShowSaveDialog(ctx context.Context, opts platform.SaveDialogOptions) (platform.SaveDialogResult, error) {
	opts.WindowID = f.id
	return f.backend.ShowSaveDialog(ctx, opts)
}

func (f *Facade) ShowOpenDialog(ctx context.Context, opts platform.OpenDialogOptions) (platform.OpenDialogResult, error) {
	opts.WindowID = f.id
	return f.backend.ShowOpenDialog(ctx, opts)
}

func (f *Facade) PickFileFolderAndOpen(ctx context.Context, opts platform.OpenDialogOptions) error {
	opts.WindowID = f.id
	return f.backend.PickFileFolderAndOpen(ctx, opts)
}

func (f *Facade) PickFileAndOpen(ctx context.Context, opts platform.OpenDialogOptions) error {
	opts.WindowID = f.id
	return f.backend.PickFileAndOpen(ctx, opts)
}

func (f *Facade) PickFolderAndOpen(ctx context.Context, opts platform.OpenDialogOptions) error {
	opts.WindowID = f.id
	return f.backend.PickFolderAndOpen(ctx, opts)
}

func (f *Facade) EnterWorkspace(ctx context.Context, path string) (*platform.WorkspaceResult, error) {
	return f.backend.EnterWorkspace(ctx, f.id, path)
}

func (f *Facade) SaveAndEnterWorkspace(ctx context.Context, path string) (*platform.WorkspaceResult, error) {
	return f.backend.SaveAndEnterWorkspace(ctx, f.id, path)
}

func (f *Facade) CreateAndEnterWorkspace(ctx context.Context, workspace platform.WorkspaceIdentifier) (*platform.WorkspaceResult, error) {
	return f.backend.CreateAndEnterWorkspace(ctx, f.id, workspace)
}

func (f *Facade) GetRecentlyOpened(ctx context.Context) (platform.RecentlyOpened, error) {
	return f.backend.GetRecentlyOpened(ctx, f.id)
}

func (f *Facade) AddRecentlyOpened(ctx context.Context, paths []string) error {
	return f.backend.AddRecentlyOpened(ctx, paths)
}

func (f *Facade) OpenWindow(ctx context.Context, opts platform.OpenWindowOptions) error {
	opts.SourceWindowID = f.id
	return f.backend.OpenWindow(ctx, opts)
}

func (f *Facade) Reload(ctx context.Context) error {
	return f.backend.ReloadWindow(ctx, f.id)
}

func (f *Facade) ToggleDevTools(ctx context.Context) error {
	return f.backend.ToggleDevTools(ctx, f.id)
}

func (f *Facade) OpenDevTools(ctx context.Context, opts platform.DevToolsOptions) error {
	opts.WindowID = f.id
	return f.backend.OpenDevTools(ctx, f.id, opts)
}

func (f *Facade) UpdateTouchBar(ctx context.Context, items [][]platform.TouchBarItem) error {
	return f.backend.UpdateTouchBar(ctx, f.id, items)
}

func (f *Facade) ResolveProxy(ctx context.Context, url string) (string, error) {
	return f.backend.ResolveProxy(ctx, f.id, url)
}
