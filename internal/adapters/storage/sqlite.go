// Package storage provides the SQLite implementation of the
// StateStore port.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"pomo/internal/ports"
)

// defaultPollInterval is how often the change watcher compares key
// revisions against the database.
const defaultPollInterval = time.Second

// Store implements ports.StateStore on a single SQLite key/value
// table. Every write bumps a per-key revision; a background poller
// uses the revisions to detect writes made by other processes and
// fires the registered subscriptions.
type Store struct {
	db *sql.DB

	mu        sync.Mutex
	subs      map[string]map[int]func([]byte)
	nextSubID int
	revs      map[string]int64
	pollEvery time.Duration
	pollStop  chan struct{}
}

// Ensure Store implements ports.StateStore.
var _ ports.StateStore = (*Store)(nil)

// New creates a SQLite-backed store at the given path.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps in-memory databases coherent and is
	// plenty for a key/value table.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	s := &Store{
		db:        db,
		subs:      make(map[string]map[int]func([]byte)),
		revs:      make(map[string]int64),
		pollEvery: defaultPollInterval,
	}

	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

// SetPollInterval adjusts how often the change watcher runs. Takes
// effect for watchers started after the call.
func (s *Store) SetPollInterval(d time.Duration) {
	s.mu.Lock()
	s.pollEvery = d
	s.mu.Unlock()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		rev INTEGER NOT NULL DEFAULT 1,
		updated_at DATETIME NOT NULL
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Get retrieves the value for a key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	var rev int64
	err := s.db.QueryRowContext(ctx,
		`SELECT value, rev FROM kv WHERE key = ?`, key,
	).Scan(&value, &rev)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}

	s.mu.Lock()
	s.revs[key] = rev
	s.mu.Unlock()

	return []byte(value), true, nil
}

// Set stores the value for a key, bumping its revision. Our own
// revision cache is updated so the watcher does not report the write
// back to us.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	var rev int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO kv (key, value, rev, updated_at) VALUES (?, ?, 1, ?)
		 ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			rev = kv.rev + 1,
			updated_at = excluded.updated_at
		 RETURNING rev`,
		key, string(value), time.Now().UTC(),
	).Scan(&rev)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}

	s.mu.Lock()
	s.revs[key] = rev
	s.mu.Unlock()

	return nil
}

// Subscribe registers a callback for external changes to a key. The
// current revision is taken as the baseline so only later writes fire.
func (s *Store) Subscribe(key string, fn func(value []byte)) (cancel func()) {
	// Establish the baseline revision before watching.
	_, _, _ = s.Get(context.Background(), key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs[key] == nil {
		s.subs[key] = make(map[int]func([]byte))
	}
	s.nextSubID++
	id := s.nextSubID
	s.subs[key][id] = fn

	if s.pollStop == nil {
		s.pollStop = make(chan struct{})
		go s.watch(s.pollStop)
	}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[key], id)
		if len(s.subs[key]) == 0 {
			delete(s.subs, key)
		}
		if len(s.subs) == 0 && s.pollStop != nil {
			close(s.pollStop)
			s.pollStop = nil
		}
	}
}

// Close stops the change watcher and closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.pollStop != nil {
		close(s.pollStop)
		s.pollStop = nil
	}
	s.mu.Unlock()
	return s.db.Close()
}

// watch polls the subscribed keys and fires callbacks when another
// process bumped a revision past our cached one.
func (s *Store) watch(stop chan struct{}) {
	s.mu.Lock()
	every := s.pollEvery
	s.mu.Unlock()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.checkSubscribed()
		}
	}
}

func (s *Store) checkSubscribed() {
	s.mu.Lock()
	keys := make([]string, 0, len(s.subs))
	for key, fns := range s.subs {
		if len(fns) > 0 {
			keys = append(keys, key)
		}
	}
	s.mu.Unlock()

	for _, key := range keys {
		var value string
		var rev int64
		err := s.db.QueryRow(
			`SELECT value, rev FROM kv WHERE key = ?`, key,
		).Scan(&value, &rev)
		if err != nil {
			continue
		}

		s.mu.Lock()
		changed := rev != s.revs[key]
		if changed {
			s.revs[key] = rev
		}
		var fns []func([]byte)
		if changed {
			for _, fn := range s.subs[key] {
				fns = append(fns, fn)
			}
		}
		s.mu.Unlock()

		for _, fn := range fns {
			fn([]byte(value))
		}
	}
}
