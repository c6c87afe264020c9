// Package host supplies the non-windowing half of the backend surface:
// dialogs through an external picker binary, workspace transitions,
// recently-opened history, and proxy resolution. Composed with a
// platform.WindowBackend it forms the complete platform.Backend.
package host

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/1broseidon/winscope/internal/platform"
	"github.com/1broseidon/winscope/internal/workspace"
)

// Options configures a Host.
type Options struct {
	// PickerCommand is the dialog binary, zenity by default.
	PickerCommand string
	// RecentPath and RecentLimit configure the recently-opened store.
	RecentPath  string
	RecentLimit int
	// WorkspaceDir holds workspace definitions; RegistryPath the active
	// workspace registry.
	WorkspaceDir string
	RegistryPath string
	// OpenCommand, when set, is executed with the picked paths appended
	// to open them in a new window. Empty leaves OpenWindow unsupported.
	OpenCommand []string
}

// Host implements platform.Backend by delegating window operations to the
// embedded WindowBackend and serving everything else itself.
type Host struct {
	platform.WindowBackend

	dialogs  *Dialogs
	recent   *RecentStore
	store    *workspace.Store
	registry *workspace.Registry
	openCmd  []string
}

var _ platform.Backend = (*Host)(nil)

// New composes a window backend with the host services.
func New(wb platform.WindowBackend, opts Options) *Host {
	if opts.PickerCommand == "" {
		opts.PickerCommand = "zenity"
	}
	return &Host{
		WindowBackend: wb,
		dialogs:       NewDialogs(opts.PickerCommand),
		recent:        NewRecentStore(opts.RecentPath, opts.RecentLimit),
		store:         workspace.NewStore(opts.WorkspaceDir),
		registry:      workspace.NewRegistry(opts.RegistryPath),
		openCmd:       opts.OpenCommand,
	}
}

func (h *Host) ShowMessageBox(ctx context.Context, opts platform.MessageBoxOptions) (platform.MessageBoxResult, error) {
	return h.dialogs.MessageBox(ctx, opts)
}

func (h *Host) ShowSaveDialog(ctx context.Context, opts platform.SaveDialogOptions) (platform.SaveDialogResult, error) {
	return h.dialogs.SaveDialog(ctx, opts)
}

func (h *Host) ShowOpenDialog(ctx context.Context, opts platform.OpenDialogOptions) (platform.OpenDialogResult, error) {
	return h.dialogs.OpenDialog(ctx, opts)
}

func (h *Host) PickFileFolderAndOpen(ctx context.Context, opts platform.OpenDialogOptions) error {
	opts.PickFiles = true
	opts.PickFolders = true
	return h.pickAndOpen(ctx, opts)
}

func (h *Host) PickFileAndOpen(ctx context.Context, opts platform.OpenDialogOptions) error {
	opts.PickFiles = true
	opts.PickFolders = false
	return h.pickAndOpen(ctx, opts)
}

func (h *Host) PickFolderAndOpen(ctx context.Context, opts platform.OpenDialogOptions) error {
	opts.PickFiles = false
	opts.PickFolders = true
	return h.pickAndOpen(ctx, opts)
}

func (h *Host) pickAndOpen(ctx context.Context, opts platform.OpenDialogOptions) error {
	res, err := h.dialogs.OpenDialog(ctx, opts)
	if err != nil {
		return err
	}
	if res.Canceled || len(res.Paths) == 0 {
		return nil
	}
	return h.OpenWindow(ctx, platform.OpenWindowOptions{
		SourceWindowID: opts.WindowID,
		Paths:          res.Paths,
	})
}

// EnterWorkspace marks the workspace at path active for the window and
// records it in the recently-opened history.
func (h *Host) EnterWorkspace(ctx context.Context, id platform.WindowID, path string) (*platform.WorkspaceResult, error) {
	wsID := workspace.IDForPath(path)
	if err := h.registry.SetActive(uint32(id), wsID, path); err != nil {
		return nil, err
	}
	if err := h.recent.AddWorkspaces(path); err != nil {
		return nil, err
	}
	return &platform.WorkspaceResult{
		Workspace: platform.WorkspaceIdentifier{ID: wsID, ConfigPath: path},
	}, nil
}

// SaveAndEnterWorkspace persists a definition for the workspace at path,
// then enters it.
func (h *Host) SaveAndEnterWorkspace(ctx context.Context, id platform.WindowID, path string) (*platform.WorkspaceResult, error) {
	ws := &workspace.Workspace{
		ID:         workspace.IDForPath(path),
		ConfigPath: path,
	}
	if err := h.store.Save(ws); err != nil {
		return nil, err
	}
	return h.EnterWorkspace(ctx, id, path)
}

// CreateAndEnterWorkspace initializes a definition for an explicit
// identifier and enters it.
func (h *Host) CreateAndEnterWorkspace(ctx context.Context, id platform.WindowID, ident platform.WorkspaceIdentifier) (*platform.WorkspaceResult, error) {
	if ident.ID == "" {
		ident.ID = workspace.IDForPath(ident.ConfigPath)
	}
	ws := &workspace.Workspace{
		ID:         ident.ID,
		ConfigPath: ident.ConfigPath,
	}
	if err := h.store.Save(ws); err != nil {
		return nil, err
	}
	if err := h.registry.SetActive(uint32(id), ident.ID, ident.ConfigPath); err != nil {
		return nil, err
	}
	if err := h.recent.AddWorkspaces(ident.ConfigPath); err != nil {
		return nil, err
	}
	return &platform.WorkspaceResult{Workspace: ident}, nil
}

func (h *Host) GetRecentlyOpened(ctx context.Context, id platform.WindowID) (platform.RecentlyOpened, error) {
	workspaces, files, err := h.recent.Get()
	if err != nil {
		return platform.RecentlyOpened{}, err
	}
	return platform.RecentlyOpened{Workspaces: workspaces, Files: files}, nil
}

func (h *Host) AddRecentlyOpened(ctx context.Context, paths []string) error {
	return h.recent.AddFiles(paths...)
}

// OpenWindow launches the configured open command with the requested
// paths and records them in the history.
func (h *Host) OpenWindow(ctx context.Context, opts platform.OpenWindowOptions) error {
	if len(h.openCmd) == 0 {
		return platform.ErrNotSupported
	}

	args := append(append([]string(nil), h.openCmd[1:]...), opts.Paths...)
	cmd := exec.CommandContext(ctx, h.openCmd[0], args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to run open command: %w", err)
	}
	// The child outlives this call; reap it in the background.
	go func() { _ = cmd.Wait() }()

	return h.recent.AddFiles(opts.Paths...)
}

func (h *Host) ReloadWindow(ctx context.Context, id platform.WindowID) error {
	return platform.ErrNotSupported
}

func (h *Host) ToggleDevTools(ctx context.Context, id platform.WindowID) error {
	return platform.ErrNotSupported
}

func (h *Host) OpenDevTools(ctx context.Context, id platform.WindowID, opts platform.DevToolsOptions) error {
	return platform.ErrNotSupported
}

func (h *Host) UpdateTouchBar(ctx context.Context, id platform.WindowID, items [][]platform.TouchBarItem) error {
	return platform.ErrNotSupported
}

func (h *Host) ResolveProxy(ctx context.Context, id platform.WindowID, url string) (string, error) {
	return resolveProxy(url)
}

// Registry exposes the active workspace registry for status reporting.
func (h *Host) Registry() *workspace.Registry {
	return h.registry
}
