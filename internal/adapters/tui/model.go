// Package tui provides the terminal timer interface using the
// Bubbletea framework.
package tui

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pomo/internal/config"
	"pomo/internal/ports"
)

// resolveTheme fills any empty string fields in the given ThemeConfig
// with defaults. If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// refreshMsg drives the display refresh loop.
type refreshMsg time.Time

func refreshCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

// Model renders the countdown and forwards key presses to the
// controller. The controller owns the actual ticking; the model only
// polls snapshots.
type Model struct {
	ctrl     ports.TimerController
	snap     ports.TimerSnapshot
	progress progress.Model
	theme    config.ThemeConfig
	width    int
	height   int
}

// NewModel creates a TUI model over the given controller.
func NewModel(ctrl ports.TimerController, theme *config.ThemeConfig) Model {
	resolved := resolveTheme(theme)
	m := Model{
		ctrl:  ctrl,
		snap:  ctrl.Snapshot(),
		theme: resolved,
	}
	m.progress = m.newProgressBar()
	return m
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return refreshCmd()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = barWidth(m.width)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "s":
			m.adopt(m.ctrl.Toggle())
			return m, nil
		case "r":
			m.adopt(m.ctrl.Reset())
			return m, nil
		}
		return m, nil

	case refreshMsg:
		m.adopt(m.ctrl.Snapshot())
		return m, refreshCmd()
	}

	return m, nil
}

// adopt installs a fresh snapshot, rebuilding the gradient when the
// phase changed.
func (m *Model) adopt(snap ports.TimerSnapshot) {
	phaseChanged := snap.Phase != m.snap.Phase
	m.snap = snap
	if phaseChanged {
		m.progress = m.newProgressBar()
		m.progress.Width = barWidth(m.width)
	}
}

func (m Model) newProgressBar() progress.Model {
	start, end := m.theme.WorkGradientStart, m.theme.WorkGradientEnd
	if m.snap.Phase.IsBreak() {
		start, end = m.theme.BreakGradientStart, m.theme.BreakGradientEnd
	}
	p := progress.New(progress.WithGradient(start, end))
	p.ShowPercentage = false
	return p
}

func barWidth(termWidth int) int {
	if termWidth <= 0 {
		return 40
	}
	w := termWidth - 10
	if w < 20 {
		w = 20
	}
	if w > 60 {
		w = 60
	}
	return w
}

// View renders the timer screen.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.ColorTitle)).
		Bold(true)
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.ColorHelp))

	phaseColor := m.theme.ColorWork
	if m.snap.Phase.IsBreak() {
		phaseColor = m.theme.ColorBreak
	}
	if !m.snap.Running {
		phaseColor = m.theme.ColorPaused
	}
	timerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(phaseColor)).
		Bold(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.theme.IconApp + " pomo"))
	b.WriteString("\n\n")

	phaseLine := m.snap.Phase.Label()
	if !m.snap.Running {
		phaseLine = m.theme.IconPaused + " " + phaseLine + " (paused)"
	}
	b.WriteString(timerStyle.Render(phaseLine))
	b.WriteString("\n\n")

	b.WriteString(timerStyle.Render(formatClock(m.snap.SecondsRemaining)))
	b.WriteString("\n\n")

	b.WriteString(m.progress.ViewAs(m.snap.Progress))
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render(m.sessionDots()))
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("space start/pause · r reset · q quit"))
	b.WriteString("\n")

	return b.String()
}

// sessionDots shows progress toward the long break.
func (m Model) sessionDots() string {
	total := m.ctrl.Settings().SessionsBeforeLongBreak
	done := m.snap.WorkSessionsSinceLongBreak
	if done > total {
		done = total
	}

	dots := make([]string, 0, total)
	for i := 0; i < total; i++ {
		if i < done {
			dots = append(dots, "●")
		} else {
			dots = append(dots, "○")
		}
	}
	return strings.Join(dots, " ")
}

// formatClock renders seconds as MM:SS, spilling into hours past 60
// minutes.
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// Run starts the timer interface and blocks until the user quits.
func Run(ctx context.Context, ctrl ports.TimerController, theme *config.ThemeConfig) error {
	program := tea.NewProgram(
		NewModel(ctrl, theme),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
