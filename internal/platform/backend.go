package platform

import (
	"context"
	"errors"

	"github.com/1broseidon/winscope/internal/event"
)

// WindowID is a platform-neutral window identifier, unique within the
// backend's window collection for the lifetime of the window.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Window contains metadata and geometry for a top-level window.
type Window struct {
	ID        WindowID
	PID       int
	AppID     string
	Title     string
	Bounds    Rect
	Focused   bool
	Maximized bool
}

// ErrNotSupported is returned by backends for operations the underlying
// platform cannot express (e.g. touch bar updates on Linux). It surfaces
// to facade callers unchanged.
var ErrNotSupported = errors.New("operation not supported by backend")

// MessageBoxKind selects the message box severity/icon.
type MessageBoxKind string

const (
	MessageBoxInfo     MessageBoxKind = "info"
	MessageBoxWarning  MessageBoxKind = "warning"
	MessageBoxError    MessageBoxKind = "error"
	MessageBoxQuestion MessageBoxKind = "question"
)

// MessageBoxOptions configures ShowMessageBox. WindowID names the window
// the box is attached to; the facade fills it in before delegation.
type MessageBoxOptions struct {
	WindowID WindowID
	Kind     MessageBoxKind
	Title    string
	Message  string
	Detail   string
	Buttons  []string
}

// MessageBoxResult reports which button dismissed the box.
type MessageBoxResult struct {
	Button int
}

// FileFilter restricts pickable files by extension.
type FileFilter struct {
	Name       string
	Extensions []string
}

// SaveDialogOptions configures ShowSaveDialog.
type SaveDialogOptions struct {
	WindowID    WindowID
	Title       string
	DefaultPath string
	Filters     []FileFilter
}

// SaveDialogResult carries the chosen path; Canceled is set when the user
// dismissed the dialog without choosing.
type SaveDialogResult struct {
	Path     string
	Canceled bool
}

// OpenDialogOptions configures ShowOpenDialog and the pick-and-open helpers.
type OpenDialogOptions struct {
	WindowID      WindowID
	Title         string
	DefaultPath   string
	Filters       []FileFilter
	PickFiles     bool
	PickFolders   bool
	AllowMultiple bool
}

// OpenDialogResult carries the chosen paths (empty when canceled).
type OpenDialogResult struct {
	Paths    []string
	Canceled bool
}

// OpenWindowOptions configures OpenWindow. SourceWindowID identifies the
// window the request originated from.
type OpenWindowOptions struct {
	SourceWindowID WindowID
	Paths          []string
	NewWindow      bool
}

// DevToolsOptions configures OpenDevTools.
type DevToolsOptions struct {
	WindowID WindowID
	Mode     string
}

// TouchBarItem is one entry of a touch bar segment.
type TouchBarItem struct {
	ID    string
	Label string
}

// WorkspaceIdentifier names a workspace by id and backing config path.
type WorkspaceIdentifier struct {
	ID         string
	ConfigPath string
}

// WorkspaceResult is returned by the workspace transition operations.
type WorkspaceResult struct {
	Workspace WorkspaceIdentifier
}

// RecentlyOpened lists workspace and file paths in most-recent-first order.
type RecentlyOpened struct {
	Workspaces []string
	Files      []string
}

// WindowBackend is the windowing subset of the multi-window surface: the
// four global id-tagged event streams, the per-id focus query, and the
// window-state operations a display-server backend can express directly.
//
// The event streams are shared by every consumer and outlive any single
// subscriber; callers must never close them.
type WindowBackend interface {
	WindowFocused() *event.Stream[WindowID]
	WindowBlurred() *event.Stream[WindowID]
	WindowMaximized() *event.Stream[WindowID]
	WindowUnmaximized() *event.Stream[WindowID]

	IsWindowFocused(ctx context.Context, id WindowID) (bool, error)

	ListWindows(ctx context.Context) ([]Window, error)
	ActiveWindow(ctx context.Context) (WindowID, error)

	FocusWindow(ctx context.Context, id WindowID) error
	MaximizeWindow(ctx context.Context, id WindowID) error
	UnmaximizeWindow(ctx context.Context, id WindowID) error
	MinimizeWindow(ctx context.Context, id WindowID) error
	ShowWindow(ctx context.Context, id WindowID) error
	CloseWindow(ctx context.Context, id WindowID) error
	ToggleFullScreen(ctx context.Context, id WindowID) error
	HandleTitleBarDoubleClick(ctx context.Context, id WindowID) error
	MoveResizeWindow(ctx context.Context, id WindowID, bounds Rect) error
	SetRepresentedFilename(ctx context.Context, id WindowID, filename string) error
	SetDocumentEdited(ctx context.Context, id WindowID, edited bool) error
}

// Backend is the complete multi-window surface consumed by window.Facade.
// It is owned by the surrounding application and handed to each facade by
// reference; a facade never owns or lifecycles it.
type Backend interface {
	WindowBackend

	// Dialogs and pickers. Caller-supplied options pass through unchanged
	// except for the injected window id.
	ShowMessageBox(ctx context.Context, opts MessageBoxOptions) (MessageBoxResult, error)
	ShowSaveDialog(ctx context.Context, opts SaveDialogOptions) (SaveDialogResult, error)
	ShowOpenDialog(ctx context.Context, opts OpenDialogOptions) (OpenDialogResult, error)
	PickFileFolderAndOpen(ctx context.Context, opts OpenDialogOptions) error
	PickFileAndOpen(ctx context.Context, opts OpenDialogOptions) error
	PickFolderAndOpen(ctx context.Context, opts OpenDialogOptions) error

	// Workspace transitions and history.
	EnterWorkspace(ctx context.Context, id WindowID, path string) (*WorkspaceResult, error)
	SaveAndEnterWorkspace(ctx context.Context, id WindowID, path string) (*WorkspaceResult, error)
	CreateAndEnterWorkspace(ctx context.Context, id WindowID, workspace WorkspaceIdentifier) (*WorkspaceResult, error)
	GetRecentlyOpened(ctx context.Context, id WindowID) (RecentlyOpened, error)
	AddRecentlyOpened(ctx context.Context, paths []string) error

	// Application-level operations.
	OpenWindow(ctx context.Context, opts OpenWindowOptions) error
	ReloadWindow(ctx context.Context, id WindowID) error
	ToggleDevTools(ctx context.Context, id WindowID) error
	OpenDevTools(ctx context.Context, id WindowID, opts DevToolsOptions) error
	UpdateTouchBar(ctx context.Context, id WindowID, items [][]TouchBarItem) error
	ResolveProxy(ctx context.Context, id WindowID, url string) (string, error)
}
