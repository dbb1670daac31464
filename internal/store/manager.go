package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/NaumanGems/Nauman-gems/internal/storage"
)

// Manager hands out one Store per session, constructing and caching each on
// first use.
type Manager struct {
	mu        sync.Mutex
	kv        storage.KV
	notifier  Notifier
	observers []Observer
	log       *slog.Logger
	stores    map[string]*Store
}

// NewManager creates a Manager. Observers are attached to every store it
// constructs.
func NewManager(kv storage.KV, notifier Notifier, log *slog.Logger, observers ...Observer) *Manager {
	return &Manager{
		kv:        kv,
		notifier:  notifier,
		observers: observers,
		log:       log,
		stores:    make(map[string]*Store),
	}
}

// ForSession returns the store for the given session, loading its persisted
// records on first access.
func (m *Manager) ForSession(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[sessionID]; ok {
		return s
	}

	s := New(ctx, sessionID, m.kv, m.notifier, m.log, m.observers...)
	m.stores[sessionID] = s
	return s
}
