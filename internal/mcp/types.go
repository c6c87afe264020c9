package mcp

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct{}

// WindowSummary describes a single tracked window.
type WindowSummary struct {
	ID        uint32 `json:"id"`
	PID       int    `json:"pid,omitempty"`
	AppID     string `json:"app_id,omitempty"`
	Title     string `json:"title"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Focused   bool   `json:"focused"`
	Maximized bool   `json:"maximized"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowSummary `json:"windows"`
}

// FocusWindowInput is the input for the focus_window tool.
type FocusWindowInput struct {
	WindowID uint32 `json:"window_id" jsonschema:"required,ID of the window to focus"`
}

// FocusWindowOutput is the output for the focus_window tool.
type FocusWindowOutput struct {
	WindowID uint32 `json:"window_id"`
	Focused  bool   `json:"focused"`
}

// SetWindowStateInput is the input for the set_window_state tool.
type SetWindowStateInput struct {
	WindowID uint32 `json:"window_id" jsonschema:"required,ID of the window to change"`
	State    string `json:"state" jsonschema:"required,Target state: maximized, unmaximized, minimized or fullscreen"`
}

// SetWindowStateOutput is the output for the set_window_state tool.
type SetWindowStateOutput struct {
	WindowID uint32 `json:"window_id"`
	State    string `json:"state"`
}

// CloseWindowInput is the input for the close_window tool.
type CloseWindowInput struct {
	WindowID uint32 `json:"window_id" jsonschema:"required,ID of the window to close"`
}

// CloseWindowOutput is the output for the close_window tool.
type CloseWindowOutput struct {
	WindowID uint32 `json:"window_id"`
	Closed   bool   `json:"closed"`
}

// ShowMessageBoxInput is the input for the show_message_box tool.
type ShowMessageBoxInput struct {
	WindowID uint32   `json:"window_id,omitempty" jsonschema:"Window to attach the dialog to (0 for none)"`
	Kind     string   `json:"kind,omitempty" jsonschema:"Dialog kind: info, warning, error or question (default: info)"`
	Title    string   `json:"title,omitempty" jsonschema:"Dialog title"`
	Message  string   `json:"message" jsonschema:"required,Dialog message text"`
	Detail   string   `json:"detail,omitempty" jsonschema:"Additional detail shown below the message"`
	Buttons  []string `json:"buttons,omitempty" jsonschema:"Button labels; the first is the default (default: OK)"`
}

// ShowMessageBoxOutput is the output for the show_message_box tool.
type ShowMessageBoxOutput struct {
	Button   int  `json:"button"`
	Canceled bool `json:"canceled"`
}
