package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"pomo/internal/domain"
)

// WriteCSV writes the daily counts as two-column CSV, sorted by
// ascending day key. The output is deterministic for a given input.
func WriteCSV(w io.Writer, counts domain.DailyCounts) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"date", "count"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := cw.Write([]string{k, strconv.Itoa(counts[k])}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportFilename returns the export artifact name for a reference date.
func ExportFilename(ref time.Time) string {
	return fmt.Sprintf("pomodoro-stats-%s.csv", domain.DayKey(ref))
}
