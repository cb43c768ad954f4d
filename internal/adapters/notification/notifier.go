// Package notification provides the desktop alerting adapter.
package notification

import (
	"time"

	"github.com/gen2brain/beeep"

	"pomo/internal/domain"
	"pomo/internal/ports"
)

// Notifier raises desktop notifications and plays the completion
// chime through the system beeper. It gates itself on the live
// settings so a toggle takes effect without rewiring.
type Notifier struct {
	settings func() domain.Settings
}

var _ ports.Alerter = (*Notifier)(nil)

// New creates a notifier reading the current settings through the
// given accessor.
func New(settings func() domain.Settings) *Notifier {
	return &Notifier{settings: settings}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, body string) error {
	if !n.settings().NotificationsEnabled {
		return nil
	}
	return beeep.Notify(title, body, "")
}

// Chime plays the completion tone if sound is enabled. The system
// beeper has no volume control, so a zero gain means silence and any
// positive gain plays at the fixed level.
func (n *Notifier) Chime(freqHz, peakGain float64, d time.Duration) error {
	if !n.settings().SoundEnabled || peakGain <= 0 {
		return nil
	}
	return beeep.Beep(freqHz, int(d.Milliseconds()))
}
