package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"pomo/internal/domain"
)

// settingKeys are the names accepted by "pomo settings set".
var settingKeys = []string{
	"work_minutes",
	"short_break_minutes",
	"long_break_minutes",
	"sessions_before_long_break",
	"sound",
	"notifications",
	"auto_start_next",
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change timer settings",
	Long: `Show the current timer settings. Settings are shared across every
pomo process through the state store, so a change here is picked up by
a running timer immediately.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := timerSvc.Settings()

		if jsonOutput {
			jsonData, err := json.MarshalIndent(settings, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal settings: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		}

		fmt.Printf("  work_minutes                %d\n", settings.WorkMinutes)
		fmt.Printf("  short_break_minutes         %d\n", settings.ShortBreakMinutes)
		fmt.Printf("  long_break_minutes          %d\n", settings.LongBreakMinutes)
		fmt.Printf("  sessions_before_long_break  %d\n", settings.SessionsBeforeLongBreak)
		fmt.Printf("  sound                       %t\n", settings.SoundEnabled)
		fmt.Printf("  notifications               %t\n", settings.NotificationsEnabled)
		fmt.Printf("  auto_start_next             %t\n", settings.AutoStartNext)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one timer setting",
	Long: `Change one timer setting. Durations are minutes and are clamped to
the 1-180 range; boolean settings accept true or false.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := timerSvc.Settings()
		if err := applySetting(&settings, args[0], args[1]); err != nil {
			return err
		}
		if err := timerSvc.SaveSettings(context.Background(), settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}

		fmt.Printf("Saved. %s is now %s\n", args[0], formatSetting(timerSvc.Settings(), args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

// applySetting updates a single field by key name.
func applySetting(settings *domain.Settings, key, value string) error {
	switch key {
	case "work_minutes", "short_break_minutes", "long_break_minutes", "sessions_before_long_break":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s expects a number, got %q", key, value)
		}
		switch key {
		case "work_minutes":
			settings.WorkMinutes = n
		case "short_break_minutes":
			settings.ShortBreakMinutes = n
		case "long_break_minutes":
			settings.LongBreakMinutes = n
		case "sessions_before_long_break":
			settings.SessionsBeforeLongBreak = n
		}
		return nil

	case "sound", "notifications", "auto_start_next":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s expects true or false, got %q", key, value)
		}
		switch key {
		case "sound":
			settings.SoundEnabled = b
		case "notifications":
			settings.NotificationsEnabled = b
		case "auto_start_next":
			settings.AutoStartNext = b
		}
		return nil

	default:
		if suggestion := suggestKey(key); suggestion != "" {
			return fmt.Errorf("unknown setting %q (did you mean %q?)", key, suggestion)
		}
		return fmt.Errorf("unknown setting %q", key)
	}
}

// suggestKey fuzzy-matches an unknown key against the known ones.
func suggestKey(key string) string {
	matches := fuzzy.Find(key, settingKeys)
	if len(matches) == 0 {
		return ""
	}
	return settingKeys[matches[0].Index]
}

// formatSetting renders the current value of one setting.
func formatSetting(settings domain.Settings, key string) string {
	switch key {
	case "work_minutes":
		return strconv.Itoa(settings.WorkMinutes)
	case "short_break_minutes":
		return strconv.Itoa(settings.ShortBreakMinutes)
	case "long_break_minutes":
		return strconv.Itoa(settings.LongBreakMinutes)
	case "sessions_before_long_break":
		return strconv.Itoa(settings.SessionsBeforeLongBreak)
	case "sound":
		return strconv.FormatBool(settings.SoundEnabled)
	case "notifications":
		return strconv.FormatBool(settings.NotificationsEnabled)
	case "auto_start_next":
		return strconv.FormatBool(settings.AutoStartNext)
	}
	return ""
}
