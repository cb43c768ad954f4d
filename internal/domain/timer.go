package domain

// Timer is the session state machine. It owns the current phase, the
// countdown, the running flag, and the count of work sessions since the
// last long break. It is advanced only by discrete calls from its host
// (ticks and user commands) and is not safe for concurrent use; the
// host serializes access.
type Timer struct {
	Phase                      Phase
	SecondsRemaining           int
	Running                    bool
	WorkSessionsSinceLongBreak int

	settings Settings
}

// Completion describes a countdown that just reached zero. The host
// uses it to dispatch side effects (history, daily count, alerts).
type Completion struct {
	Finished Phase
	Next     Phase
	// DurationMinutes is the finished phase's configured duration at
	// completion time.
	DurationMinutes int
}

// NewTimer creates a timer in its initial state: work phase, full
// duration, not running.
func NewTimer(settings Settings) *Timer {
	s := settings.Normalized()
	return &Timer{
		Phase:            PhaseWork,
		SecondsRemaining: MinutesToSeconds(s.WorkMinutes),
		settings:         s,
	}
}

// Tick advances the countdown by one second. It reports true exactly
// when the countdown transitions to zero; the host must then call
// Advance to perform the phase transition. A tick while not running or
// already at zero is a no-op.
func (t *Timer) Tick() bool {
	if !t.Running || t.SecondsRemaining == 0 {
		return false
	}
	t.SecondsRemaining--
	if t.SecondsRemaining == 0 {
		t.Running = false
		return true
	}
	return false
}

// Advance performs the phase transition after a completed countdown:
// work alternates with short breaks until the long-break interval is
// reached, breaks always return to work. The next countdown starts at
// the full configured duration and runs only if auto-start is enabled.
func (t *Timer) Advance() Completion {
	finished := t.Phase
	finishedMinutes := t.settings.PhaseMinutes(finished)

	switch t.Phase {
	case PhaseWork:
		t.WorkSessionsSinceLongBreak++
		if t.WorkSessionsSinceLongBreak >= t.settings.SessionsBeforeLongBreak {
			t.Phase = PhaseLongBreak
			t.WorkSessionsSinceLongBreak = 0
		} else {
			t.Phase = PhaseShortBreak
		}
	default:
		t.Phase = PhaseWork
	}

	t.SecondsRemaining = MinutesToSeconds(t.settings.PhaseMinutes(t.Phase))
	t.Running = t.settings.AutoStartNext

	return Completion{
		Finished:        finished,
		Next:            t.Phase,
		DurationMinutes: finishedMinutes,
	}
}

// ToggleRunning flips the running flag. Starting from an expired
// countdown refills the current phase first; under normal operation
// Advance has already moved on, so this only guards against a
// completion the host never processed.
func (t *Timer) ToggleRunning() {
	if !t.Running && t.SecondsRemaining == 0 {
		t.SecondsRemaining = MinutesToSeconds(t.settings.PhaseMinutes(t.Phase))
	}
	t.Running = !t.Running
}

// Reset unconditionally returns the timer to its initial state. It is
// idempotent and does not touch any persisted statistics.
func (t *Timer) Reset() {
	t.Phase = PhaseWork
	t.SecondsRemaining = MinutesToSeconds(t.settings.WorkMinutes)
	t.Running = false
	t.WorkSessionsSinceLongBreak = 0
}

// ApplySettings adopts new settings. While paused the countdown is
// recomputed from the new duration of the current phase; while running
// the in-progress countdown is left untouched and the new durations
// take effect on the next transition.
func (t *Timer) ApplySettings(settings Settings) {
	t.settings = settings.Normalized()
	if !t.Running {
		t.SecondsRemaining = MinutesToSeconds(t.settings.PhaseMinutes(t.Phase))
	}
}

// Settings returns the timer's current settings.
func (t *Timer) Settings() Settings {
	return t.settings
}

// Progress returns the completed fraction of the current phase,
// clamped to [0,1]. A zero-duration phase reports 0.
func (t *Timer) Progress() float64 {
	total := MinutesToSeconds(t.settings.PhaseMinutes(t.Phase))
	if total == 0 {
		return 0
	}
	p := 1 - float64(t.SecondsRemaining)/float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
