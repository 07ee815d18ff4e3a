package store

import (
	"context"
	"sync"

	"appresp/internal/model"
)

// MemoryStore keeps the collection for the lifetime of the process only.
type MemoryStore struct {
	mu    sync.Mutex
	apps  []model.Application
	known []string
}

func NewMemoryStore(apps []model.Application, known []string) *MemoryStore {
	return &MemoryStore{apps: model.CloneAll(apps), known: knownOrDefault(known)}
}

func (m *MemoryStore) Load(_ context.Context) ([]model.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return prepare(model.CloneAll(m.apps))
}

func (m *MemoryStore) Save(_ context.Context, apps []model.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apps = model.CloneAll(apps)
	return nil
}

func (m *MemoryStore) SetKnownTags(tags []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.known = knownOrDefault(tags)
}

func (m *MemoryStore) KnownTags() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.known...)
}

func (m *MemoryStore) Path() string   { return "" }
func (m *MemoryStore) Writable() bool { return false }
