package domain

// Duration bounds for every phase setting, in minutes.
const (
	MinPhaseMinutes = 1
	MaxPhaseMinutes = 180
)

// Settings holds the user-configured durations and toggles.
// Instances that reach the timer are always normalized; callers at the
// input boundary are responsible for calling Normalized first.
type Settings struct {
	WorkMinutes             int  `json:"work_minutes"`
	ShortBreakMinutes       int  `json:"short_break_minutes"`
	LongBreakMinutes        int  `json:"long_break_minutes"`
	SessionsBeforeLongBreak int  `json:"sessions_before_long_break"`
	SoundEnabled            bool `json:"sound_enabled"`
	NotificationsEnabled    bool `json:"notifications_enabled"`
	AutoStartNext           bool `json:"auto_start_next"`
}

// DefaultSettings returns the standard pomodoro configuration.
func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:             25,
		ShortBreakMinutes:       5,
		LongBreakMinutes:        15,
		SessionsBeforeLongBreak: 4,
		SoundEnabled:            true,
		NotificationsEnabled:    true,
		AutoStartNext:           false,
	}
}

// Normalized returns a copy with all duration fields clamped into
// [MinPhaseMinutes, MaxPhaseMinutes] and the long-break interval
// floored at 1.
func (s Settings) Normalized() Settings {
	s.WorkMinutes = clampMinutes(s.WorkMinutes)
	s.ShortBreakMinutes = clampMinutes(s.ShortBreakMinutes)
	s.LongBreakMinutes = clampMinutes(s.LongBreakMinutes)
	if s.SessionsBeforeLongBreak < 1 {
		s.SessionsBeforeLongBreak = 1
	}
	return s
}

// PhaseMinutes returns the configured duration for a phase, in minutes.
func (s Settings) PhaseMinutes(p Phase) int {
	switch p {
	case PhaseShortBreak:
		return s.ShortBreakMinutes
	case PhaseLongBreak:
		return s.LongBreakMinutes
	default:
		return s.WorkMinutes
	}
}

// MinutesToSeconds converts a minute count to seconds, flooring
// negative input at zero.
func MinutesToSeconds(minutes int) int {
	if minutes < 0 {
		return 0
	}
	return minutes * 60
}

func clampMinutes(v int) int {
	if v < MinPhaseMinutes {
		return MinPhaseMinutes
	}
	if v > MaxPhaseMinutes {
		return MaxPhaseMinutes
	}
	return v
}
