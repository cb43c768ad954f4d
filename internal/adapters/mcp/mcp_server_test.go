package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"pomo/internal/domain"
	"pomo/internal/ports"
)

// fakeController is a scripted ports.TimerController for testing the
// tool handlers without a real ticking service.
type fakeController struct {
	snap     ports.TimerSnapshot
	settings domain.Settings
	daily    domain.DailyCounts
	history  domain.History
}

func newFakeController() *fakeController {
	settings := domain.DefaultSettings()
	return &fakeController{
		snap: ports.TimerSnapshot{
			Phase:            domain.PhaseWork,
			SecondsRemaining: settings.WorkMinutes * 60,
		},
		settings: settings,
		daily:    domain.DailyCounts{},
	}
}

func (f *fakeController) Snapshot() ports.TimerSnapshot { return f.snap }

func (f *fakeController) Toggle() ports.TimerSnapshot {
	f.snap.Running = !f.snap.Running
	return f.snap
}

func (f *fakeController) Reset() ports.TimerSnapshot {
	f.snap = ports.TimerSnapshot{
		Phase:            domain.PhaseWork,
		SecondsRemaining: f.settings.WorkMinutes * 60,
	}
	return f.snap
}

func (f *fakeController) Settings() domain.Settings { return f.settings }

func (f *fakeController) SaveSettings(ctx context.Context, s domain.Settings) error {
	f.settings = s.Normalized()
	return nil
}

func (f *fakeController) Stats() (domain.DailyCounts, domain.History) {
	return f.daily, f.history
}

// toolText extracts the text payload of a tool result.
func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", result.Content[0])
	}
	return text.Text
}

func TestNewServer(t *testing.T) {
	server := NewServer(newFakeController())
	if server == nil {
		t.Fatal("NewServer() returned nil")
	}
	if server.server == nil {
		t.Error("NewServer() did not create MCP server")
	}
}

func TestServer_handleGetTimerState(t *testing.T) {
	server := NewServer(newFakeController())

	result, err := server.handleGetTimerState(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleGetTimerState() error = %v", err)
	}

	var state map[string]interface{}
	if err := json.Unmarshal([]byte(toolText(t, result)), &state); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}

	if state["phase"] != "work" {
		t.Errorf("phase = %v, want work", state["phase"])
	}
	if state["seconds_remaining"].(float64) != 1500 {
		t.Errorf("seconds_remaining = %v, want 1500", state["seconds_remaining"])
	}
}

func TestServer_handleStartTimer(t *testing.T) {
	ctrl := newFakeController()
	server := NewServer(ctrl)

	result, err := server.handleStartTimer(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleStartTimer() error = %v", err)
	}

	var state map[string]interface{}
	if err := json.Unmarshal([]byte(toolText(t, result)), &state); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if state["running"] != true {
		t.Error("start should start the paused timer")
	}

	// A second start is a no-op, never a pause.
	result, err = server.handleStartTimer(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleStartTimer() error = %v", err)
	}
	if err := json.Unmarshal([]byte(toolText(t, result)), &state); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if state["running"] != true {
		t.Error("start on a running timer must keep it running")
	}
}

func TestServer_handlePauseTimer(t *testing.T) {
	ctrl := newFakeController()
	server := NewServer(ctrl)

	// Pause on an already paused timer is a no-op.
	result, err := server.handlePauseTimer(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handlePauseTimer() error = %v", err)
	}
	var state map[string]interface{}
	if err := json.Unmarshal([]byte(toolText(t, result)), &state); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if state["running"] != false {
		t.Error("pause on a paused timer must keep it paused")
	}

	ctrl.Toggle()
	result, err = server.handlePauseTimer(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handlePauseTimer() error = %v", err)
	}
	if err := json.Unmarshal([]byte(toolText(t, result)), &state); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if state["running"] != false {
		t.Error("pause should pause the running timer")
	}
}

func TestServer_handleGetStats(t *testing.T) {
	ctrl := newFakeController()
	ctrl.daily = domain.DailyCounts{
		domain.DayKey(time.Now()): 3,
	}
	server := NewServer(ctrl)

	result, err := server.handleGetStats(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleGetStats() error = %v", err)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(toolText(t, result)), &payload); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}

	if payload["lifetime_total"].(float64) != 3 {
		t.Errorf("lifetime_total = %v, want 3", payload["lifetime_total"])
	}
	week := payload["week"].([]interface{})
	if len(week) != 7 {
		t.Errorf("week has %d points, want 7", len(week))
	}
}

func TestServer_handleUpdateSettings(t *testing.T) {
	ctrl := newFakeController()
	server := NewServer(ctrl)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"work_minutes": 500,
			},
		},
	}

	result, err := server.handleUpdateSettings(context.Background(), request)
	if err != nil {
		t.Fatalf("handleUpdateSettings() error = %v", err)
	}
	if result.IsError {
		t.Fatal("handleUpdateSettings() returned error result")
	}

	if ctrl.settings.WorkMinutes != domain.MaxPhaseMinutes {
		t.Errorf("work minutes = %d, want clamped to %d", ctrl.settings.WorkMinutes, domain.MaxPhaseMinutes)
	}
	if ctrl.settings.ShortBreakMinutes != 5 {
		t.Errorf("omitted settings should keep current values, got %d", ctrl.settings.ShortBreakMinutes)
	}
}

func TestServer_Stop(t *testing.T) {
	server := NewServer(newFakeController())

	// Stop before Start should not panic.
	if err := server.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}
