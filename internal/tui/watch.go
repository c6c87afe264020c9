// Package tui renders a live view of the daemon's tracked windows.
package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/1broseidon/winscope/internal/ipc"
)

const refreshInterval = time.Second

// windowLister is the slice of the IPC client the watch view uses.
type windowLister interface {
	ListWindows() (*ipc.WindowsData, error)
	GetStatus() (*ipc.StatusData, error)
}

type tickMsg time.Time

type windowsMsg struct {
	windows []ipc.WindowInfo
	uptime  int64
	err     error
}

// model is the root bubbletea model for the watch view.
type model struct {
	client windowLister

	windows []ipc.WindowInfo
	uptime  int64
	lastErr error

	width  int
	height int
}

func newModel(client windowLister) model {
	return model{client: client}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) fetch() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		data, err := client.ListWindows()
		if err != nil {
			return windowsMsg{err: err}
		}
		msg := windowsMsg{windows: data.Windows}
		if status, err := client.GetStatus(); err == nil {
			msg.uptime = status.UptimeSeconds
		}
		return msg
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), tick())
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "r":
			return m, m.fetch()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		return m, tea.Batch(m.fetch(), tick())

	case windowsMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.lastErr = nil
		m.windows = msg.windows
		m.uptime = msg.uptime
	}
	return m, nil
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	focusedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("114"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

// View implements tea.Model.
func (m model) View() string {
	header := titleStyle.Render("winscope") + " " +
		dimStyle.Render(fmt.Sprintf("%d windows, daemon up %s", len(m.windows), formatUptime(m.uptime)))

	body := ""
	if m.lastErr != nil {
		body = errStyle.Render(fmt.Sprintf("daemon unreachable: %v", m.lastErr))
	} else if len(m.windows) == 0 {
		body = dimStyle.Render("no windows tracked")
	} else {
		for _, w := range m.windows {
			body += renderWindowRow(w) + "\n"
		}
	}

	help := helpStyle.Render("q quit · r refresh")
	return header + "\n\n" + body + help
}

func renderWindowRow(w ipc.WindowInfo) string {
	marker := "  "
	if w.Focused {
		marker = focusedStyle.Render("▶ ")
	}

	title := w.Title
	if title == "" {
		title = "(untitled)"
	}
	line := fmt.Sprintf("%s%-10d %s", marker, w.ID, title)

	flags := ""
	if w.Maximized {
		flags += " [max]"
	}
	geo := fmt.Sprintf("  %dx%d+%d+%d", w.Width, w.Height, w.X, w.Y)

	if w.Focused {
		return line + flags + dimStyle.Render(geo)
	}
	return dimStyle.Render(line+flags) + dimStyle.Render(geo)
}

func formatUptime(seconds int64) string {
	if seconds <= 0 {
		return "0s"
	}
	d := time.Duration(seconds) * time.Second
	if d >= time.Hour {
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
	if d >= time.Minute {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}

// Run starts the watch view, blocking until the user quits.
func Run(client *ipc.Client) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("watch requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	p := tea.NewProgram(newModel(client), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
