package workspace

import (
	"path/filepath"
	"testing"
)

func TestRegistry_SetActiveAndRemove(t *testing.T) {
	r := NewRegistry(filepath.Join(t.TempDir(), "active.json"))

	if _, ok := r.Active(7); ok {
		t.Fatal("empty registry reported an active workspace")
	}

	if err := r.SetActive(7, "abc123", "/home/u/proj/ws.json"); err != nil {
		t.Fatalf("set active: %v", err)
	}
	ws, ok := r.Active(7)
	if !ok || ws.WorkspaceID != "abc123" || ws.ConfigPath != "/home/u/proj/ws.json" {
		t.Fatalf("active returned %+v ok=%v", ws, ok)
	}
	if ws.OpenedAt.IsZero() {
		t.Fatal("set active did not stamp OpenedAt")
	}

	if err := r.SetActive(9, "def456", "/home/u/other/ws.json"); err != nil {
		t.Fatalf("set active: %v", err)
	}
	all, err := r.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 entries, got %v", all)
	}

	if err := r.Remove(7); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := r.Active(7); ok {
		t.Fatal("entry survived remove")
	}
	if _, ok := r.Active(9); !ok {
		t.Fatal("remove dropped an unrelated entry")
	}
}

func TestRegistry_SetActiveReplacesEntry(t *testing.T) {
	r := NewRegistry(filepath.Join(t.TempDir(), "active.json"))

	if err := r.SetActive(7, "first", "/a"); err != nil {
		t.Fatalf("set active: %v", err)
	}
	if err := r.SetActive(7, "second", "/b"); err != nil {
		t.Fatalf("set active: %v", err)
	}

	ws, ok := r.Active(7)
	if !ok || ws.WorkspaceID != "second" {
		t.Fatalf("expected replacement, got %+v", ws)
	}
}
