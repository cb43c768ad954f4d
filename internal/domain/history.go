package domain

import (
	"time"

	"github.com/google/uuid"
)

// HistoryLimit caps the session log; the oldest entries are evicted
// beyond it.
const HistoryLimit = 50

// LogEntry is an immutable record of one completed work session.
type LogEntry struct {
	ID              string    `json:"id"`
	Type            Phase     `json:"type"`
	CompletedAt     time.Time `json:"completed_at"`
	DurationMinutes int       `json:"duration_minutes"`
	GitBranch       string    `json:"git_branch,omitempty"`
	GitCommit       string    `json:"git_commit,omitempty"`
}

// NewLogEntry creates a log entry for a work session completed at the
// given time with the duration setting in effect at completion.
func NewLogEntry(completedAt time.Time, durationMinutes int) LogEntry {
	return LogEntry{
		ID:              uuid.New().String(),
		Type:            PhaseWork,
		CompletedAt:     completedAt,
		DurationMinutes: durationMinutes,
	}
}

// History is an ordered session log, most recent first.
type History []LogEntry

// Prepend returns the history with the entry inserted at the front,
// evicting the oldest entries beyond HistoryLimit.
func (h History) Prepend(e LogEntry) History {
	out := make(History, 0, len(h)+1)
	out = append(out, e)
	out = append(out, h...)
	if len(out) > HistoryLimit {
		out = out[:HistoryLimit]
	}
	return out
}

// DailyCounts maps a local calendar day key to the number of work
// sessions completed that day. Counts only ever increase.
type DailyCounts map[string]int

// Increment bumps the count for a day key by one.
func (c DailyCounts) Increment(key string) {
	c[key]++
}

// Clone returns an independent copy for snapshot reads.
func (c DailyCounts) Clone() DailyCounts {
	out := make(DailyCounts, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// DayKey formats a time as its local calendar day, ISO YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
