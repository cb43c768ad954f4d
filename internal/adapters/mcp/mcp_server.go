// Package mcp exposes the timer over the Model Context Protocol so
// agents can drive sessions and read stats.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"pomo/internal/domain"
	"pomo/internal/ports"
	"pomo/internal/stats"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server *server.MCPServer
	ctrl   ports.TimerController
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new MCP server over the given controller.
func NewServer(ctrl ports.TimerController) *Server {
	s := &Server{ctrl: ctrl}

	s.server = server.NewMCPServer(
		"pomo",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_timer_state",
			mcp.WithDescription("Get the current timer state: phase, remaining time, running flag, and progress"),
		),
		s.handleGetTimerState,
	)

	s.server.AddTool(
		mcp.NewTool(
			"start_timer",
			mcp.WithDescription("Start the countdown; a no-op if the timer is already running"),
		),
		s.handleStartTimer,
	)

	s.server.AddTool(
		mcp.NewTool(
			"pause_timer",
			mcp.WithDescription("Pause the countdown; a no-op if the timer is already paused"),
		),
		s.handlePauseTimer,
	)

	s.server.AddTool(
		mcp.NewTool(
			"reset_timer",
			mcp.WithDescription("Reset the timer to a paused work session; stats are kept"),
		),
		s.handleResetTimer,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_stats",
			mcp.WithDescription("Get completed pomodoro stats: weekly series, streak, and totals"),
		),
		s.handleGetStats,
	)

	updateSettingsTool := mcp.NewTool(
		"update_settings",
		mcp.WithDescription("Update timer settings; out-of-range durations are clamped to 1-180 minutes"),
		mcp.WithNumber(
			"work_minutes",
			mcp.Description("Work session length in minutes"),
		),
		mcp.WithNumber(
			"short_break_minutes",
			mcp.Description("Short break length in minutes"),
		),
		mcp.WithNumber(
			"long_break_minutes",
			mcp.Description("Long break length in minutes"),
		),
		mcp.WithNumber(
			"sessions_before_long_break",
			mcp.Description("Work sessions before a long break"),
		),
	)
	s.server.AddTool(updateSettingsTool, s.handleUpdateSettings)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// handleGetTimerState handles the get_timer_state tool.
func (s *Server) handleGetTimerState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return snapshotResult(s.ctrl.Snapshot(), s.ctrl.Settings())
}

// handleStartTimer handles the start_timer tool. Idempotent: a timer
// that is already running is left alone.
func (s *Server) handleStartTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := s.ctrl.Snapshot()
	if !snap.Running {
		snap = s.ctrl.Toggle()
	}
	return snapshotResult(snap, s.ctrl.Settings())
}

// handlePauseTimer handles the pause_timer tool. Idempotent: a timer
// that is already paused is left alone.
func (s *Server) handlePauseTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := s.ctrl.Snapshot()
	if snap.Running {
		snap = s.ctrl.Toggle()
	}
	return snapshotResult(snap, s.ctrl.Settings())
}

// handleResetTimer handles the reset_timer tool.
func (s *Server) handleResetTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return snapshotResult(s.ctrl.Reset(), s.ctrl.Settings())
}

// handleGetStats handles the get_stats tool.
func (s *Server) handleGetStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	daily, history := s.ctrl.Stats()
	now := time.Now()

	series := stats.WeeklySeries(daily, now)
	week := make([]map[string]interface{}, 0, len(series))
	for _, p := range series {
		week = append(week, map[string]interface{}{
			"day":     p.Day,
			"weekday": p.Weekday,
			"count":   p.Count,
		})
	}

	weeklyTotal := stats.WeeklyTotal(series)
	result := map[string]interface{}{
		"week":            week,
		"streak_days":     stats.Streak(daily, now),
		"weekly_total":    weeklyTotal,
		"lifetime_total":  stats.LifetimeTotal(daily),
		"average_per_day": stats.AveragePerDay(weeklyTotal),
		"recent_sessions": len(history),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stats: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleUpdateSettings handles the update_settings tool. Omitted
// arguments keep their current values.
func (s *Server) handleUpdateSettings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	settings := s.ctrl.Settings()

	settings.WorkMinutes = request.GetInt("work_minutes", settings.WorkMinutes)
	settings.ShortBreakMinutes = request.GetInt("short_break_minutes", settings.ShortBreakMinutes)
	settings.LongBreakMinutes = request.GetInt("long_break_minutes", settings.LongBreakMinutes)
	settings.SessionsBeforeLongBreak = request.GetInt("sessions_before_long_break", settings.SessionsBeforeLongBreak)

	if err := s.ctrl.SaveSettings(ctx, settings); err != nil {
		return mcp.NewToolResultError("failed to save settings: " + err.Error()), nil
	}

	jsonData, err := json.MarshalIndent(s.ctrl.Settings(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// snapshotResult renders a timer snapshot as a tool result.
func snapshotResult(snap ports.TimerSnapshot, settings domain.Settings) (*mcp.CallToolResult, error) {
	result := map[string]interface{}{
		"phase":                      string(snap.Phase),
		"seconds_remaining":          snap.SecondsRemaining,
		"running":                    snap.Running,
		"progress":                   snap.Progress,
		"sessions_since_long_break":  snap.WorkSessionsSinceLongBreak,
		"sessions_before_long_break": settings.SessionsBeforeLongBreak,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}
