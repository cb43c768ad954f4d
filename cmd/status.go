package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"pomo/internal/domain"
	"pomo/internal/stats"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's progress",
	Long:  `Display today's completed pomodoros, the current streak, and the active timer settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		daily, history := timerSvc.Stats()
		settings := timerSvc.Settings()
		now := time.Now()

		if jsonOutput {
			return outputStatusJSON(daily, history, settings, now)
		}

		printStatusText(daily, history, settings, now)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// outputStatusJSON outputs the status in JSON format
func outputStatusJSON(daily domain.DailyCounts, history domain.History, settings domain.Settings, now time.Time) error {
	result := map[string]interface{}{
		"today":          daily[domain.DayKey(now)],
		"streak_days":    stats.Streak(daily, now),
		"lifetime_total": stats.LifetimeTotal(daily),
		"settings":       settings,
	}

	if len(history) > 0 {
		last := history[0]
		entry := map[string]interface{}{
			"completed_at":     last.CompletedAt.Format(time.RFC3339),
			"duration_minutes": last.DurationMinutes,
		}
		if last.GitBranch != "" {
			entry["git_branch"] = last.GitBranch
			entry["git_commit"] = last.GitCommit
		}
		result["last_session"] = entry
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}

// printStatusText prints the status in plain text format
func printStatusText(daily domain.DailyCounts, history domain.History, settings domain.Settings, now time.Time) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(appConfig.Theme.ColorTitle))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(appConfig.Theme.ColorHelp))

	width := 40
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 && w < 40 {
		width = w
	}

	fmt.Printf("\n  %s\n", titleStyle.Render(appConfig.Theme.IconApp+" pomo · "+now.Format("Mon Jan 2")))
	fmt.Printf("  %s\n\n", dimStyle.Render(strings.Repeat("─", width)))

	today := daily[domain.DayKey(now)]
	fmt.Printf("  Today: %d completed\n", today)
	fmt.Printf("  Streak: %d day(s)\n", stats.Streak(daily, now))
	fmt.Printf("  Lifetime: %d\n\n", stats.LifetimeTotal(daily))

	if len(history) > 0 {
		last := history[0]
		line := fmt.Sprintf("Last session: %s (%dm)",
			last.CompletedAt.Format("Jan 2 15:04"), last.DurationMinutes)
		if last.GitBranch != "" {
			line += fmt.Sprintf(" · %s %s (%s)", appConfig.Theme.IconGit, last.GitBranch, last.GitCommit)
		}
		fmt.Printf("  %s\n\n", dimStyle.Render(line))
	}

	fmt.Printf("  %s\n", dimStyle.Render(fmt.Sprintf(
		"Settings: %dm work / %dm short / %dm long · long break every %d",
		settings.WorkMinutes, settings.ShortBreakMinutes,
		settings.LongBreakMinutes, settings.SessionsBeforeLongBreak)))
}
