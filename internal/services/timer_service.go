// Package services hosts the timer state machine and wires it to the
// persistence, alerting, and git ports.
package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"pomo/internal/domain"
	"pomo/internal/ports"
)

// Completion chime parameters.
const (
	chimeFreqHz   = 880.0
	chimePeakGain = 0.5
	chimeDuration = 1200 * time.Millisecond
)

// TimerService owns the session state machine plus the in-memory
// copies of settings, daily counts, and history. All mutations are
// serialized behind one mutex; ticks, user commands, and store
// subscription callbacks never run concurrently with each other.
type TimerService struct {
	mu      sync.Mutex
	store   ports.StateStore
	alerter ports.Alerter
	git     ports.GitDetector

	timer   *domain.Timer
	daily   domain.DailyCounts
	history domain.History

	tickStop chan struct{}
	unsubs   []func()

	now func() time.Time
}

// persistedStats is the JSON document stored under ports.KeyStats.
type persistedStats struct {
	Daily   domain.DailyCounts `json:"daily"`
	History domain.History     `json:"history"`
}

// NewTimerService creates a service with default settings and empty
// stats; call Load to adopt persisted state.
func NewTimerService(store ports.StateStore, git ports.GitDetector) *TimerService {
	return &TimerService{
		store: store,
		git:   git,
		timer: domain.NewTimer(domain.DefaultSettings()),
		daily: domain.DailyCounts{},
		now:   time.Now,
	}
}

// SetAlerter wires the completion side-effect capability. A nil
// alerter silently skips sound and notifications.
func (s *TimerService) SetAlerter(a ports.Alerter) {
	s.mu.Lock()
	s.alerter = a
	s.mu.Unlock()
}

// Load reads both persisted documents and subscribes to external
// changes. Read failures and malformed payloads fall back to the
// defaults; nothing here is fatal.
func (s *TimerService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, ok, err := s.store.Get(ctx, ports.KeySettings); err != nil {
		log.Printf("settings read failed, using defaults: %v", err)
	} else if ok {
		var settings domain.Settings
		if err := json.Unmarshal(raw, &settings); err != nil {
			log.Printf("stored settings unreadable, using defaults: %v", err)
		} else {
			s.timer.ApplySettings(settings)
		}
	}

	if raw, ok, err := s.store.Get(ctx, ports.KeyStats); err != nil {
		log.Printf("stats read failed, starting empty: %v", err)
	} else if ok {
		var ps persistedStats
		if err := json.Unmarshal(raw, &ps); err != nil {
			log.Printf("stored stats unreadable, starting empty: %v", err)
		} else {
			if ps.Daily != nil {
				s.daily = ps.Daily
			}
			s.history = ps.History
		}
	}

	s.unsubs = append(s.unsubs,
		s.store.Subscribe(ports.KeySettings, s.adoptSettings),
		s.store.Subscribe(ports.KeyStats, s.adoptStats),
	)
}

// Close stops the tick loop and cancels store subscriptions.
func (s *TimerService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTicking()
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
}

// Snapshot implements ports.TimerController.
func (s *TimerService) Snapshot() ports.TimerSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Toggle implements ports.TimerController. The tick loop exists only
// while the timer is running.
func (s *TimerService) Toggle() ports.TimerSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timer.ToggleRunning()
	if s.timer.Running {
		s.startTicking()
	} else {
		s.stopTicking()
	}
	return s.snapshotLocked()
}

// Reset implements ports.TimerController. Persisted stats are not
// touched.
func (s *TimerService) Reset() ports.TimerSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timer.Reset()
	s.stopTicking()
	return s.snapshotLocked()
}

// Settings implements ports.TimerController.
func (s *TimerService) Settings() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer.Settings()
}

// SaveSettings implements ports.TimerController. The settings are
// normalized and adopted (recomputing the countdown only while
// paused); persistence is best-effort, so a failed write is logged and
// the in-memory copy stays authoritative for this process.
func (s *TimerService) SaveSettings(ctx context.Context, settings domain.Settings) error {
	settings = settings.Normalized()

	s.mu.Lock()
	s.timer.ApplySettings(settings)
	s.mu.Unlock()

	raw, err := json.Marshal(settings)
	if err != nil {
		log.Printf("encode settings failed: %v", err)
		return nil
	}
	if err := s.store.Set(ctx, ports.KeySettings, raw); err != nil {
		log.Printf("persist settings failed: %v", err)
	}
	return nil
}

// Stats implements ports.TimerController.
func (s *TimerService) Stats() (domain.DailyCounts, domain.History) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make(domain.History, len(s.history))
	copy(history, s.history)
	return s.daily.Clone(), history
}

var _ ports.TimerController = (*TimerService)(nil)

func (s *TimerService) snapshotLocked() ports.TimerSnapshot {
	return ports.TimerSnapshot{
		Phase:                      s.timer.Phase,
		SecondsRemaining:           s.timer.SecondsRemaining,
		Running:                    s.timer.Running,
		WorkSessionsSinceLongBreak: s.timer.WorkSessionsSinceLongBreak,
		Progress:                   s.timer.Progress(),
	}
}

// startTicking launches the one-second tick loop. Callers hold mu.
func (s *TimerService) startTicking() {
	if s.tickStop != nil {
		return
	}
	stop := make(chan struct{})
	s.tickStop = stop

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.tick()
			}
		}
	}()
}

// stopTicking tears the tick loop down. Callers hold mu.
func (s *TimerService) stopTicking() {
	if s.tickStop != nil {
		close(s.tickStop)
		s.tickStop = nil
	}
}

// tick advances the countdown by one second and, when the countdown
// reaches zero, applies the phase transition and records its side
// effects. Alerts are dispatched after the lock is released so a slow
// notification can never delay the state machine.
func (s *TimerService) tick() {
	s.mu.Lock()
	if !s.timer.Tick() {
		s.mu.Unlock()
		return
	}

	completion := s.timer.Advance()
	s.recordCompletion(completion)
	if !s.timer.Running {
		s.stopTicking()
	}
	alerter := s.alerter
	s.mu.Unlock()

	if alerter != nil {
		go dispatchAlerts(alerter, completion)
	}
}

// recordCompletion folds a completed work phase into the history and
// today's count and persists the result. Break completions leave the
// stats untouched. Callers hold mu.
func (s *TimerService) recordCompletion(c domain.Completion) {
	if c.Finished != domain.PhaseWork {
		return
	}

	entry := domain.NewLogEntry(s.now(), c.DurationMinutes)
	if s.git != nil && s.git.IsAvailable() {
		if info, err := s.git.Detect(context.Background(), ""); err == nil && info != nil {
			entry.GitBranch = info.Branch
			entry.GitCommit = info.Commit
		}
	}

	s.history = s.history.Prepend(entry)
	s.daily.Increment(domain.DayKey(s.now()))
	s.persistStatsLocked()
}

// persistStatsLocked writes the stats document, best-effort. Callers
// hold mu.
func (s *TimerService) persistStatsLocked() {
	raw, err := json.Marshal(persistedStats{Daily: s.daily, History: s.history})
	if err != nil {
		log.Printf("encode stats failed: %v", err)
		return
	}
	if err := s.store.Set(context.Background(), ports.KeyStats, raw); err != nil {
		log.Printf("persist stats failed: %v", err)
	}
}

// adoptSettings handles an external change to the settings key.
// Unparsable payloads keep the prior in-memory copy.
func (s *TimerService) adoptSettings(raw []byte) {
	var settings domain.Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		log.Printf("ignoring unreadable external settings: %v", err)
		return
	}
	s.mu.Lock()
	s.timer.ApplySettings(settings)
	s.mu.Unlock()
}

// adoptStats handles an external change to the stats key,
// last-write-wins.
func (s *TimerService) adoptStats(raw []byte) {
	var ps persistedStats
	if err := json.Unmarshal(raw, &ps); err != nil {
		log.Printf("ignoring unreadable external stats: %v", err)
		return
	}
	s.mu.Lock()
	if ps.Daily != nil {
		s.daily = ps.Daily
	}
	s.history = ps.History
	s.mu.Unlock()
}

// dispatchAlerts plays the completion chime and raises a notification
// describing the next phase. The capability gates itself on the
// current settings; failures are swallowed here.
func dispatchAlerts(alerter ports.Alerter, c domain.Completion) {
	_ = alerter.Chime(chimeFreqHz, chimePeakGain, chimeDuration)
	_ = alerter.Notify(completionTitle(c.Finished), completionBody(c.Next))
}

func completionTitle(finished domain.Phase) string {
	if finished == domain.PhaseWork {
		return "Pomodoro complete"
	}
	return "Break over"
}

func completionBody(next domain.Phase) string {
	switch next {
	case domain.PhaseShortBreak:
		return "Time for a short break."
	case domain.PhaseLongBreak:
		return "Great run. Take a long break."
	default:
		return "Ready for the next work session?"
	}
}
