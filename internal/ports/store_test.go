package ports

import (
	"context"
	"testing"
)

// Mock implementation for testing the StateStore contract.

type mockStateStore struct {
	values map[string][]byte
	subs   map[string][]func([]byte)
}

func newMockStateStore() *mockStateStore {
	return &mockStateStore{
		values: make(map[string][]byte),
		subs:   make(map[string][]func([]byte)),
	}
}

func (m *mockStateStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mockStateStore) Set(ctx context.Context, key string, value []byte) error {
	m.values[key] = value
	return nil
}

func (m *mockStateStore) Subscribe(key string, fn func([]byte)) func() {
	m.subs[key] = append(m.subs[key], fn)
	return func() { m.subs[key] = nil }
}

func (m *mockStateStore) Close() error { return nil }

// injectExternalChange simulates a write from another process.
func (m *mockStateStore) injectExternalChange(key string, value []byte) {
	m.values[key] = value
	for _, fn := range m.subs[key] {
		fn(value)
	}
}

func TestMockStateStore(t *testing.T) {
	var store StateStore = newMockStateStore()
	ctx := context.Background()

	t.Run("absent key", func(t *testing.T) {
		_, ok, err := store.Get(ctx, KeySettings)
		if err != nil {
			t.Errorf("Get() error = %v", err)
		}
		if ok {
			t.Error("Get() reported a value for an absent key")
		}
	})

	t.Run("set and get", func(t *testing.T) {
		if err := store.Set(ctx, KeySettings, []byte(`{"work_minutes":25}`)); err != nil {
			t.Errorf("Set() error = %v", err)
		}
		v, ok, err := store.Get(ctx, KeySettings)
		if err != nil || !ok {
			t.Fatalf("Get() = %v, %v", ok, err)
		}
		if string(v) != `{"work_minutes":25}` {
			t.Errorf("Get() value = %s", v)
		}
	})

	t.Run("subscription fires on external change", func(t *testing.T) {
		mock := newMockStateStore()
		var got []byte
		cancel := mock.Subscribe(KeyStats, func(v []byte) { got = v })
		defer cancel()

		mock.injectExternalChange(KeyStats, []byte(`{}`))
		if string(got) != `{}` {
			t.Errorf("subscription value = %s, want {}", got)
		}
	})
}
