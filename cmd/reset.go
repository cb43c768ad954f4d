package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the timer",
	Long:  `Return the timer to a paused work session at its full duration. Completed session statistics are kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap := timerSvc.Reset()

		if jsonOutput {
			jsonData, err := json.MarshalIndent(map[string]interface{}{
				"phase":             string(snap.Phase),
				"seconds_remaining": snap.SecondsRemaining,
				"running":           snap.Running,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal state: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		}

		fmt.Printf("Timer reset: %s, %d:%02d remaining, paused\n",
			snap.Phase.Label(), snap.SecondsRemaining/60, snap.SecondsRemaining%60)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
