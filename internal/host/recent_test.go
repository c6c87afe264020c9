package host

import (
	"path/filepath"
	"testing"
)

func newTestRecent(t *testing.T, limit int) *RecentStore {
	t.Helper()
	return NewRecentStore(filepath.Join(t.TempDir(), "recent.json"), limit)
}

func TestRecentStore_MostRecentFirst(t *testing.T) {
	s := newTestRecent(t, 10)

	if err := s.AddFiles("/a"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.AddFiles("/b", "/c"); err != nil {
		t.Fatalf("add: %v", err)
	}

	_, files, err := s.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := []string{"/c", "/b", "/a"}
	if len(files) != len(want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, files)
		}
	}
}

func TestRecentStore_DeduplicatesByPath(t *testing.T) {
	s := newTestRecent(t, 10)

	for _, p := range []string{"/a", "/b", "/a"} {
		if err := s.AddFiles(p); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	_, files, err := s.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(files) != 2 || files[0] != "/a" || files[1] != "/b" {
		t.Fatalf("expected [/a /b], got %v", files)
	}
}

func TestRecentStore_BoundedByLimit(t *testing.T) {
	s := newTestRecent(t, 2)

	if err := s.AddWorkspaces("/w1", "/w2", "/w3"); err != nil {
		t.Fatalf("add: %v", err)
	}

	workspaces, _, err := s.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(workspaces) != 2 || workspaces[0] != "/w3" || workspaces[1] != "/w2" {
		t.Fatalf("expected [/w3 /w2], got %v", workspaces)
	}
}

func TestRecentStore_SeparateLists(t *testing.T) {
	s := newTestRecent(t, 10)

	if err := s.AddFiles("/f"); err != nil {
		t.Fatalf("add files: %v", err)
	}
	if err := s.AddWorkspaces("/w"); err != nil {
		t.Fatalf("add workspaces: %v", err)
	}

	workspaces, files, err := s.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(workspaces) != 1 || workspaces[0] != "/w" {
		t.Fatalf("workspaces = %v", workspaces)
	}
	if len(files) != 1 || files[0] != "/f" {
		t.Fatalf("files = %v", files)
	}
}
