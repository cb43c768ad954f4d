package ports

import (
	"context"

	"pomo/internal/domain"
)

// TimerSnapshot is an immutable-at-read-time view of the state machine
// for presentation layers.
type TimerSnapshot struct {
	Phase                      domain.Phase
	SecondsRemaining           int
	Running                    bool
	WorkSessionsSinceLongBreak int
	Progress                   float64
}

// TimerController is the command surface the presentation and MCP
// layers drive. This is a driving port (implemented by the service
// layer).
type TimerController interface {
	// Snapshot returns the current timer state.
	Snapshot() TimerSnapshot

	// Toggle flips the running flag and returns the resulting state.
	Toggle() TimerSnapshot

	// Reset returns the timer to its initial state.
	Reset() TimerSnapshot

	// Settings returns the current timer settings.
	Settings() domain.Settings

	// SaveSettings normalizes, adopts, and persists new settings.
	// Persistence is best-effort; a failed write is logged, not
	// returned.
	SaveSettings(ctx context.Context, s domain.Settings) error

	// Stats returns snapshot copies of the daily counts and history.
	Stats() (domain.DailyCounts, domain.History)
}
