package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"pomo/internal/stats"
)

var exportStdout bool

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export daily pomodoro counts as CSV",
	Long: `Export the per-day pomodoro counts as a CSV file with date and
count columns, sorted by date. Writes pomodoro-stats-<date>.csv in the
current directory unless --stdout is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		daily, _ := timerSvc.Stats()

		if exportStdout {
			return stats.WriteCSV(os.Stdout, daily)
		}

		filename := stats.ExportFilename(time.Now())
		f, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()

		if err := stats.WriteCSV(f, daily); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}

		fmt.Printf("Exported to %s\n", filename)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "Write CSV to stdout instead of a file")
}
