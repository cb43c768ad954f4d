package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomo/internal/adapters/storage"
	"pomo/internal/domain"
	"pomo/internal/ports"
	"pomo/internal/services"
)

// newStore opens a SQLite store on the given path with a fast watcher
// for tests.
func newStore(t *testing.T, dbPath string) *storage.Store {
	t.Helper()

	store, err := storage.New(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// newService builds a loaded timer service over the store.
func newService(t *testing.T, store *storage.Store) *services.TimerService {
	t.Helper()

	svc := services.NewTimerService(store, nil)
	svc.Load(context.Background())
	t.Cleanup(svc.Close)
	return svc
}

func TestSettingsRoundtripThroughStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "pomo.db")
	ctx := context.Background()

	svc := newService(t, newStore(t, dbPath))

	settings := svc.Settings()
	settings.WorkMinutes = 50
	settings.SessionsBeforeLongBreak = 2
	require.NoError(t, svc.SaveSettings(ctx, settings))

	// A fresh service over the same database adopts the saved values.
	fresh := newService(t, newStore(t, dbPath))
	assert.Equal(t, 50, fresh.Settings().WorkMinutes)
	assert.Equal(t, 2, fresh.Settings().SessionsBeforeLongBreak)
	assert.Equal(t, 50*60, fresh.Snapshot().SecondsRemaining)
}

func TestSettingsClampPersisted(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "pomo.db")
	ctx := context.Background()

	svc := newService(t, newStore(t, dbPath))

	settings := svc.Settings()
	settings.WorkMinutes = 9000
	settings.ShortBreakMinutes = 0
	require.NoError(t, svc.SaveSettings(ctx, settings))

	fresh := newService(t, newStore(t, dbPath))
	assert.Equal(t, domain.MaxPhaseMinutes, fresh.Settings().WorkMinutes)
	assert.Equal(t, domain.MinPhaseMinutes, fresh.Settings().ShortBreakMinutes)
}

func TestCrossProcessSettingsPropagation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "pomo.db")
	ctx := context.Background()

	watcherStore := newStore(t, dbPath)
	watcherStore.SetPollInterval(10 * time.Millisecond)
	watcher := newService(t, watcherStore)

	writer := newService(t, newStore(t, dbPath))

	settings := writer.Settings()
	settings.WorkMinutes = 45
	require.NoError(t, writer.SaveSettings(ctx, settings))

	// The watching service adopts the change and, while paused,
	// recomputes its countdown.
	require.Eventually(t, func() bool {
		return watcher.Settings().WorkMinutes == 45
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 45*60, watcher.Snapshot().SecondsRemaining)
}

func TestCrossProcessStatsPropagation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "pomo.db")
	ctx := context.Background()

	watcherStore := newStore(t, dbPath)
	watcherStore.SetPollInterval(10 * time.Millisecond)
	watcher := newService(t, watcherStore)

	// Another process persists a stats document.
	writerStore := newStore(t, dbPath)
	require.NoError(t, writerStore.Set(ctx, ports.KeyStats,
		[]byte(`{"daily":{"2024-03-01":4},"history":[]}`)))

	require.Eventually(t, func() bool {
		daily, _ := watcher.Stats()
		return daily["2024-03-01"] == 4
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTimerLifecycleOverRealStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "pomo.db")

	svc := newService(t, newStore(t, dbPath))

	snap := svc.Toggle()
	assert.True(t, snap.Running)
	assert.Equal(t, domain.PhaseWork, snap.Phase)

	snap = svc.Reset()
	assert.False(t, snap.Running)
	assert.Equal(t, domain.DefaultSettings().WorkMinutes*60, snap.SecondsRemaining)

	// Stats remain empty; reset never touches them.
	daily, history := svc.Stats()
	assert.Empty(t, daily)
	assert.Empty(t, history)
}
