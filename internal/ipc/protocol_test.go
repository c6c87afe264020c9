package ipc

import (
	"encoding/json"
	"testing"
)

func TestParseRequest_RoundTrip(t *testing.T) {
	payload, _ := json.Marshal(SetWindowStatePayload{WindowID: 42, State: StateMaximized})
	data, err := json.Marshal(Request{Command: CommandSetWindowState, Payload: payload})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	req, err := ParseRequest(append(data, '\n'))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if req.Command != CommandSetWindowState {
		t.Fatalf("command = %q", req.Command)
	}

	var got SetWindowStatePayload
	if err := json.Unmarshal(req.Payload, &got); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if got.WindowID != 42 || got.State != StateMaximized {
		t.Fatalf("payload = %+v", got)
	}
}

func TestParseRequest_InvalidJSON(t *testing.T) {
	if _, err := ParseRequest([]byte("{nope")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNewOKResponse_WithData(t *testing.T) {
	resp, err := NewOKResponse(WindowsData{Windows: []WindowInfo{{ID: 7, Title: "editor", Focused: true}}})
	if err != nil {
		t.Fatalf("new response: %v", err)
	}
	if resp.Status != "OK" {
		t.Fatalf("status = %q", resp.Status)
	}

	raw, err := resp.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Response
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	var data WindowsData
	if err := json.Unmarshal(back.Data, &data); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if len(data.Windows) != 1 || data.Windows[0].ID != 7 || !data.Windows[0].Focused {
		t.Fatalf("data = %+v", data)
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("window not tracked")
	if resp.Status != "ERROR" || resp.Error != "window not tracked" {
		t.Fatalf("response = %+v", resp)
	}
}
