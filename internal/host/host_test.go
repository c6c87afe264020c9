package host

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/1broseidon/winscope/internal/platform"
	"github.com/1broseidon/winscope/internal/workspace"
)

func newTestHost(t *testing.T) (*Host, string) {
	t.Helper()
	td := t.TempDir()
	h := New(nil, Options{
		RecentPath:   filepath.Join(td, "recent.json"),
		RecentLimit:  10,
		WorkspaceDir: filepath.Join(td, "workspaces"),
		RegistryPath: filepath.Join(td, "active.json"),
	})
	return h, td
}

func TestHost_EnterWorkspaceRecordsActiveAndRecent(t *testing.T) {
	h, _ := newTestHost(t)
	ctx := context.Background()

	res, err := h.EnterWorkspace(ctx, 7, "/home/u/proj/ws.json")
	if err != nil {
		t.Fatalf("enter workspace: %v", err)
	}
	if res.Workspace.ConfigPath != "/home/u/proj/ws.json" {
		t.Fatalf("result = %+v", res)
	}
	if res.Workspace.ID != workspace.IDForPath("/home/u/proj/ws.json") {
		t.Fatalf("workspace id not derived from path: %+v", res)
	}

	active, ok := h.Registry().Active(7)
	if !ok || active.ConfigPath != "/home/u/proj/ws.json" {
		t.Fatalf("registry entry = %+v ok=%v", active, ok)
	}

	recent, err := h.GetRecentlyOpened(ctx, 7)
	if err != nil {
		t.Fatalf("recently opened: %v", err)
	}
	if len(recent.Workspaces) != 1 || recent.Workspaces[0] != "/home/u/proj/ws.json" {
		t.Fatalf("recent workspaces = %v", recent.Workspaces)
	}
}

func TestHost_SaveAndEnterWorkspacePersistsDefinition(t *testing.T) {
	h, td := newTestHost(t)

	res, err := h.SaveAndEnterWorkspace(context.Background(), 9, "/home/u/proj/ws.json")
	if err != nil {
		t.Fatalf("save and enter: %v", err)
	}

	ws, err := workspace.NewStore(filepath.Join(td, "workspaces")).Read(res.Workspace.ID)
	if err != nil {
		t.Fatalf("read definition: %v", err)
	}
	if ws.ConfigPath != "/home/u/proj/ws.json" {
		t.Fatalf("definition = %+v", ws)
	}
}

func TestHost_CreateAndEnterWorkspaceDerivesMissingID(t *testing.T) {
	h, _ := newTestHost(t)

	res, err := h.CreateAndEnterWorkspace(context.Background(), 3, platform.WorkspaceIdentifier{
		ConfigPath: "/home/u/new/ws.json",
	})
	if err != nil {
		t.Fatalf("create and enter: %v", err)
	}
	if res.Workspace.ID != workspace.IDForPath("/home/u/new/ws.json") {
		t.Fatalf("expected derived id, got %+v", res)
	}
}

func TestHost_UnsupportedOperations(t *testing.T) {
	h, _ := newTestHost(t)
	ctx := context.Background()

	if err := h.ReloadWindow(ctx, 1); !errors.Is(err, platform.ErrNotSupported) {
		t.Fatalf("ReloadWindow: expected ErrNotSupported, got %v", err)
	}
	if err := h.ToggleDevTools(ctx, 1); !errors.Is(err, platform.ErrNotSupported) {
		t.Fatalf("ToggleDevTools: expected ErrNotSupported, got %v", err)
	}
	if err := h.OpenDevTools(ctx, 1, platform.DevToolsOptions{}); !errors.Is(err, platform.ErrNotSupported) {
		t.Fatalf("OpenDevTools: expected ErrNotSupported, got %v", err)
	}
	if err := h.UpdateTouchBar(ctx, 1, nil); !errors.Is(err, platform.ErrNotSupported) {
		t.Fatalf("UpdateTouchBar: expected ErrNotSupported, got %v", err)
	}
	if err := h.OpenWindow(ctx, platform.OpenWindowOptions{Paths: []string{"/x"}}); !errors.Is(err, platform.ErrNotSupported) {
		t.Fatalf("OpenWindow without command: expected ErrNotSupported, got %v", err)
	}
}

func TestHost_AddRecentlyOpened(t *testing.T) {
	h, _ := newTestHost(t)
	ctx := context.Background()

	if err := h.AddRecentlyOpened(ctx, []string{"/a.go", "/b.go"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	recent, err := h.GetRecentlyOpened(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(recent.Files) != 2 || recent.Files[0] != "/b.go" {
		t.Fatalf("files = %v", recent.Files)
	}
}
