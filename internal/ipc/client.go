package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/winscope/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	// Connect to socket
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	// Set deadline
	conn.SetDeadline(time.Now().Add(c.timeout))

	// Marshal request
	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Send request
	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	// Read response
	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// Parse response
	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	// Check for error response
	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	req := &Request{
		Command: CommandGetStatus,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// ListWindows retrieves the tracked window list
func (c *Client) ListWindows() (*WindowsData, error) {
	req := &Request{
		Command: CommandListWindows,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var data WindowsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse windows data: %w", err)
	}

	return &data, nil
}

// FocusWindow asks the daemon to focus a window
func (c *Client) FocusWindow(id uint32) error {
	payload, err := json.Marshal(WindowPayload{WindowID: id})
	if err != nil {
		return fmt.Errorf("failed to marshal focus payload: %w", err)
	}

	req := &Request{
		Command: CommandFocusWindow,
		Payload: payload,
	}

	_, err = c.sendRequest(req)
	return err
}

// SetWindowState asks the daemon to change a window's state
func (c *Client) SetWindowState(id uint32, state string) error {
	payload, err := json.Marshal(SetWindowStatePayload{WindowID: id, State: state})
	if err != nil {
		return fmt.Errorf("failed to marshal state payload: %w", err)
	}

	req := &Request{
		Command: CommandSetWindowState,
		Payload: payload,
	}

	_, err = c.sendRequest(req)
	return err
}

// CloseWindow asks the daemon to close a window
func (c *Client) CloseWindow(id uint32) error {
	payload, err := json.Marshal(WindowPayload{WindowID: id})
	if err != nil {
		return fmt.Errorf("failed to marshal close payload: %w", err)
	}

	req := &Request{
		Command: CommandCloseWindow,
		Payload: payload,
	}

	_, err = c.sendRequest(req)
	return err
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
