package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/winscope/internal/ipc"
)

type fakeLister struct {
	windows []ipc.WindowInfo
	err     error
}

func (f *fakeLister) ListWindows() (*ipc.WindowsData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &ipc.WindowsData{Windows: f.windows}, nil
}

func (f *fakeLister) GetStatus() (*ipc.StatusData, error) {
	return &ipc.StatusData{UptimeSeconds: 65, DaemonRunning: true}, nil
}

func TestUpdate_AppliesWindowList(t *testing.T) {
	m := newModel(&fakeLister{})

	next, _ := m.Update(windowsMsg{
		windows: []ipc.WindowInfo{{ID: 7, Title: "editor", Focused: true}},
		uptime:  65,
	})

	got := next.(model)
	if len(got.windows) != 1 || got.windows[0].ID != 7 {
		t.Fatalf("windows = %+v", got.windows)
	}
	if got.lastErr != nil {
		t.Fatalf("lastErr = %v", got.lastErr)
	}
}

func TestUpdate_KeepsWindowsOnFetchError(t *testing.T) {
	m := newModel(&fakeLister{})
	next, _ := m.Update(windowsMsg{windows: []ipc.WindowInfo{{ID: 7}}})
	next, _ = next.(model).Update(windowsMsg{err: errors.New("connection refused")})

	got := next.(model)
	if got.lastErr == nil {
		t.Fatal("fetch error not recorded")
	}
	if len(got.windows) != 1 {
		t.Fatalf("stale window list dropped: %+v", got.windows)
	}
}

func TestUpdate_QuitKeys(t *testing.T) {
	m := newModel(&fakeLister{})
	for _, key := range []string{"q", "ctrl+c", "esc"} {
		var msg tea.KeyMsg
		switch key {
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("key %q did not produce a quit command", key)
		}
	}
}

func TestView_MarksFocusedWindow(t *testing.T) {
	m := newModel(&fakeLister{})
	m.windows = []ipc.WindowInfo{
		{ID: 7, Title: "editor", Focused: true, Width: 800, Height: 600},
		{ID: 9, Title: "terminal", Maximized: true},
	}
	m.uptime = 65

	view := m.View()
	if !strings.Contains(view, "editor") || !strings.Contains(view, "terminal") {
		t.Fatalf("view missing window titles:\n%s", view)
	}
	if !strings.Contains(view, "▶") {
		t.Fatalf("view missing focus marker:\n%s", view)
	}
	if !strings.Contains(view, "[max]") {
		t.Fatalf("view missing maximize flag:\n%s", view)
	}
	if !strings.Contains(view, "1m5s") {
		t.Fatalf("view missing uptime:\n%s", view)
	}
}

func TestView_ShowsDaemonError(t *testing.T) {
	m := newModel(&fakeLister{})
	m.lastErr = errors.New("connection refused")

	if !strings.Contains(m.View(), "daemon unreachable") {
		t.Fatal("view does not surface the daemon error")
	}
}

func TestFormatUptime(t *testing.T) {
	cases := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{42, "42s"},
		{65, "1m5s"},
		{3725, "1h2m"},
	}
	for _, tc := range cases {
		if got := formatUptime(tc.seconds); got != tc.want {
			t.Errorf("formatUptime(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
