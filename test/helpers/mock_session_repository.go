package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/redcycle-go/internal/domain/session"
)

// MockSessionRepository is a test double for session.Repository
type MockSessionRepository struct {
	mu       sync.RWMutex
	snapshot *session.Snapshot
	saves    int
	clears   int
	LoadErr  error
	SaveErr  error
	ClearErr error
}

// NewMockSessionRepository creates an empty mock session repository
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{}
}

// Seed stores a snapshot as if a previous run had saved it
func (m *MockSessionRepository) Seed(snap *session.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = snap
}

// Load returns the stored snapshot, or an empty one
func (m *MockSessionRepository) Load(ctx context.Context) (*session.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.snapshot == nil {
		return &session.Snapshot{}, nil
	}
	return m.snapshot, nil
}

// Save replaces the stored snapshot
func (m *MockSessionRepository) Save(ctx context.Context, snap *session.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.snapshot = snap
	m.saves++
	return nil
}

// Clear drops the stored snapshot
func (m *MockSessionRepository) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.snapshot = nil
	m.clears++
	return nil
}

// Stored returns the last saved snapshot (nil after Clear)
func (m *MockSessionRepository) Stored() *session.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// SaveCount returns how many times Save succeeded
func (m *MockSessionRepository) SaveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// ClearCount returns how many times Clear succeeded
func (m *MockSessionRepository) ClearCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.clears
}
