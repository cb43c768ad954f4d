package ports

import "time"

// Alerter delivers phase-completion side effects. The core calls it
// unconditionally; implementations check enablement themselves and
// must never let a platform failure propagate as anything worse than
// an error return, which callers are free to ignore.
// This is a driven port (implemented by adapters).
type Alerter interface {
	// Notify raises a desktop notification.
	Notify(title, body string) error

	// Chime plays a short completion tone at the given frequency and
	// peak gain for roughly the given duration.
	Chime(freqHz float64, peakGain float64, d time.Duration) error
}
