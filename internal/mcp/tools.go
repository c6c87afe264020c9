package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winscope/internal/host"
	"github.com/1broseidon/winscope/internal/ipc"
	"github.com/1broseidon/winscope/internal/platform"
)

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	data, err := s.client.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}

	out := ListWindowsOutput{Windows: make([]WindowSummary, 0, len(data.Windows))}
	for _, w := range data.Windows {
		out.Windows = append(out.Windows, WindowSummary{
			ID:        w.ID,
			PID:       w.PID,
			AppID:     w.AppID,
			Title:     w.Title,
			X:         w.X,
			Y:         w.Y,
			Width:     w.Width,
			Height:    w.Height,
			Focused:   w.Focused,
			Maximized: w.Maximized,
		})
	}
	return nil, out, nil
}

func (s *Server) handleFocusWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args FocusWindowInput) (*mcpsdk.CallToolResult, FocusWindowOutput, error) {
	if args.WindowID == 0 {
		return nil, FocusWindowOutput{}, fmt.Errorf("window_id is required")
	}
	if err := s.client.FocusWindow(args.WindowID); err != nil {
		return nil, FocusWindowOutput{}, err
	}
	return nil, FocusWindowOutput{WindowID: args.WindowID, Focused: true}, nil
}

func (s *Server) handleSetWindowState(_ context.Context, _ *mcpsdk.CallToolRequest, args SetWindowStateInput) (*mcpsdk.CallToolResult, SetWindowStateOutput, error) {
	if args.WindowID == 0 {
		return nil, SetWindowStateOutput{}, fmt.Errorf("window_id is required")
	}
	switch args.State {
	case ipc.StateMaximized, ipc.StateUnmaximized, ipc.StateMinimized, ipc.StateFullscreen:
	default:
		return nil, SetWindowStateOutput{}, fmt.Errorf("unknown state %q; expected maximized, unmaximized, minimized or fullscreen", args.State)
	}
	if err := s.client.SetWindowState(args.WindowID, args.State); err != nil {
		return nil, SetWindowStateOutput{}, err
	}
	return nil, SetWindowStateOutput{WindowID: args.WindowID, State: args.State}, nil
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args CloseWindowInput) (*mcpsdk.CallToolResult, CloseWindowOutput, error) {
	if args.WindowID == 0 {
		return nil, CloseWindowOutput{}, fmt.Errorf("window_id is required")
	}
	if err := s.client.CloseWindow(args.WindowID); err != nil {
		return nil, CloseWindowOutput{}, err
	}
	return nil, CloseWindowOutput{WindowID: args.WindowID, Closed: true}, nil
}

func (s *Server) handleShowMessageBox(ctx context.Context, _ *mcpsdk.CallToolRequest, args ShowMessageBoxInput) (*mcpsdk.CallToolResult, ShowMessageBoxOutput, error) {
	if args.Message == "" {
		return nil, ShowMessageBoxOutput{}, fmt.Errorf("message is required")
	}

	kind := platform.MessageBoxInfo
	switch args.Kind {
	case "", string(platform.MessageBoxInfo):
	case string(platform.MessageBoxWarning):
		kind = platform.MessageBoxWarning
	case string(platform.MessageBoxError):
		kind = platform.MessageBoxError
	case string(platform.MessageBoxQuestion):
		kind = platform.MessageBoxQuestion
	default:
		return nil, ShowMessageBoxOutput{}, fmt.Errorf("unknown kind %q; expected info, warning, error or question", args.Kind)
	}

	result, err := s.dialogs.MessageBox(ctx, platform.MessageBoxOptions{
		WindowID: platform.WindowID(args.WindowID),
		Kind:     kind,
		Title:    args.Title,
		Message:  args.Message,
		Detail:   args.Detail,
		Buttons:  args.Buttons,
	})
	if err != nil {
		return nil, ShowMessageBoxOutput{}, err
	}

	return nil, ShowMessageBoxOutput{
		Button:   result.Button,
		Canceled: result.Button == host.CancelButton,
	}, nil
}
