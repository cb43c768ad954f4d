package cmd

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"pomo/internal/domain"
	"pomo/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a dashboard of completed pomodoros",
	Long:  `Display a terminal dashboard with the last seven days of completed pomodoros, the current streak, and lifetime totals.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		daily, _ := timerSvc.Stats()
		fmt.Println()
		renderDashboard(daily, time.Now())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func renderDashboard(daily domain.DailyCounts, now time.Time) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(appConfig.Theme.ColorTitle))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(appConfig.Theme.ColorHelp))
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(appConfig.Theme.ColorWork))
	barColor := lipgloss.NewStyle().Foreground(lipgloss.Color(appConfig.Theme.ColorWork))

	series := stats.WeeklySeries(daily, now)
	weeklyTotal := stats.WeeklyTotal(series)

	// Header
	fmt.Printf("  %s\n", titleStyle.Render(appConfig.Theme.IconStats+" Last 7 days"))
	fmt.Printf("  %s\n\n", dimStyle.Render(strings.Repeat("─", 40)))

	if stats.LifetimeTotal(daily) == 0 {
		fmt.Printf("  %s\n\n", dimStyle.Render("No completed pomodoros yet."))
		return
	}

	// Bar chart: pomodoros per day
	maxCount := 0
	for _, p := range series {
		if p.Count > maxCount {
			maxCount = p.Count
		}
	}

	maxBarWidth := 30
	for _, p := range series {
		barWidth := 0
		if maxCount > 0 {
			barWidth = int(math.Round(float64(p.Count) / float64(maxCount) * float64(maxBarWidth)))
		}
		if barWidth < 1 && p.Count > 0 {
			barWidth = 1
		}
		fmt.Printf("  %s %s %d\n",
			dimStyle.Render(p.Weekday),
			barColor.Render(buildBar(barWidth)),
			p.Count,
		)
	}
	fmt.Println()

	fmt.Printf("  %s %s  %s %s  %s %s\n\n",
		dimStyle.Render("This week:"),
		valueStyle.Render(fmt.Sprintf("%d", weeklyTotal)),
		dimStyle.Render("Daily avg:"),
		valueStyle.Render(fmt.Sprintf("%d", stats.AveragePerDay(weeklyTotal))),
		dimStyle.Render("Streak:"),
		valueStyle.Render(fmt.Sprintf("%d day(s)", stats.Streak(daily, now))),
	)

	fmt.Printf("  %s %s\n\n",
		dimStyle.Render("Lifetime:"),
		valueStyle.Render(fmt.Sprintf("%d pomodoros", stats.LifetimeTotal(daily))),
	)
}

// buildBar creates a horizontal bar using block characters.
func buildBar(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat("█", width)
}
