package history

import (
	"sync"
)

// MemoryStore is an in-memory history store for testing and for runs
// with history disabled. Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	runs   []Run
	byID   map[string]int
	closed bool
}

// NewMemoryStore creates a new in-memory history store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]int),
	}
}

// Record implements Store.
func (m *MemoryStore) Record(run Run) (Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Run{}, ErrStoreClosed
	}

	run = prepare(run)
	if i, ok := m.byID[run.ID]; ok {
		m.runs[i] = run
		return run, nil
	}
	m.byID[run.ID] = len(m.runs)
	m.runs = append(m.runs, run)
	return run, nil
}

// Get implements Store.
func (m *MemoryStore) Get(id string) (Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Run{}, ErrStoreClosed
	}

	i, ok := m.byID[id]
	if !ok {
		return Run{}, ErrNotFound
	}
	return m.runs[i], nil
}

// List implements Store.
func (m *MemoryStore) List(limit int) ([]Run, error) {
	return m.list(func(Run) bool { return true }, limit)
}

// ListAction implements Store.
func (m *MemoryStore) ListAction(action string, limit int) ([]Run, error) {
	return m.list(func(r Run) bool { return r.Action == action }, limit)
}

func (m *MemoryStore) list(match func(Run) bool, limit int) ([]Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	var out []Run
	for i := len(m.runs) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		if match(m.runs[i]) {
			out = append(out, m.runs[i])
		}
	}
	return out, nil
}

// Clear implements Store.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	m.runs = nil
	m.byID = make(map[string]int)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.runs = nil
	m.byID = nil
	return nil
}

// Len returns the number of recorded runs.
// Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.runs)
}
