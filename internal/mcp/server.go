// Package mcp exposes the window daemon over the Model Context Protocol.
// Window tools talk to the daemon through its IPC socket; dialogs run
// locally against the host picker command.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winscope/internal/ipc"
	"github.com/1broseidon/winscope/internal/platform"
)

const (
	ServerName    = "winscope"
	ServerVersion = "0.1.0"
)

// windowClient is the slice of the IPC client the tools use.
type windowClient interface {
	ListWindows() (*ipc.WindowsData, error)
	FocusWindow(id uint32) error
	SetWindowState(id uint32, state string) error
	CloseWindow(id uint32) error
}

// dialogService shows message boxes on the local display.
type dialogService interface {
	MessageBox(ctx context.Context, opts platform.MessageBoxOptions) (platform.MessageBoxResult, error)
}

// Server is the MCP server bridging tools to the window daemon.
type Server struct {
	mcpServer *mcpsdk.Server
	client    windowClient
	dialogs   dialogService
}

// NewServer creates an MCP server backed by the given daemon client and
// dialog service.
func NewServer(client windowClient, dialogs dialogService) *Server {
	s := &Server{
		client:  client,
		dialogs: dialogs,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the windows tracked by the winscope daemon with geometry, focus and maximize state.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Raise and focus a window by its ID.",
	}, s.handleFocusWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_window_state",
		Description: "Change a window's state. Accepts maximized, unmaximized, minimized or fullscreen.",
	}, s.handleSetWindowState)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Ask the window manager to close a window by its ID.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "show_message_box",
		Description: "Show a message box on the local display and report which button dismissed it.",
	}, s.handleShowMessageBox)
}
