// internal/domain/storefront/store.go
package storefront

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSessionNotFound is returned when deleting a session that does not exist
var ErrSessionNotFound = errors.New("session not found")

// Store hosts page sessions by id
type Store interface {
	// Update runs fn against the session, creating a fresh one when the id is
	// unknown or expired, and persists the result. Calls for the same id are
	// serialised.
	Update(ctx context.Context, id string, fn func(*Session) error) error
	// Delete disposes of a session
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	mu      sync.Mutex
	session *Session
	expires time.Time
}

// MemoryStore keeps live sessions in process memory
type MemoryStore struct {
	mu       sync.Mutex
	catalog  Catalog
	ttl      time.Duration
	opts     []Option
	sessions map[string]*memoryEntry
	now      func() time.Time
}

// NewMemoryStore creates an in-memory store whose idle sessions expire after ttl
func NewMemoryStore(c Catalog, ttl time.Duration, opts ...Option) *MemoryStore {
	return &MemoryStore{
		catalog:  c,
		ttl:      ttl,
		opts:     opts,
		sessions: make(map[string]*memoryEntry),
		now:      time.Now,
	}
}

// lock returns the locked entry for id, retrying if a sweep or delete
// detached the entry before it was locked.
func (m *MemoryStore) lock(id string) *memoryEntry {
	for {
		m.mu.Lock()
		e, ok := m.sessions[id]
		if !ok {
			e = &memoryEntry{}
			m.sessions[id] = e
		}
		m.mu.Unlock()

		e.mu.Lock()
		m.mu.Lock()
		current := m.sessions[id] == e
		m.mu.Unlock()
		if current {
			return e
		}
		e.mu.Unlock()
	}
}

// Update implements Store
func (m *MemoryStore) Update(ctx context.Context, id string, fn func(*Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e := m.lock(id)
	defer e.mu.Unlock()

	now := m.now()
	if e.session != nil && now.After(e.expires) {
		e.session.Close()
		e.session = nil
	}
	if e.session == nil {
		e.session = NewSession(m.catalog, m.opts...)
	}
	e.expires = now.Add(m.ttl)

	return fn(e.session)
}

// Delete implements Store
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return ErrSessionNotFound
	}
	e.session.Close()
	e.session = nil
	return nil
}

// Len returns the number of live sessions
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep disposes of expired sessions and returns how many were removed.
// Sessions busy in an Update are skipped until the next sweep.
func (m *MemoryStore) Sweep() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, e := range m.sessions {
		if !e.mu.TryLock() {
			continue
		}
		if e.session == nil || now.After(e.expires) {
			delete(m.sessions, id)
			e.session.Close()
			e.session = nil
			removed++
		}
		e.mu.Unlock()
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done
func (m *MemoryStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// Close disposes of every session
func (m *MemoryStore) Close() {
	m.mu.Lock()
	entries := m.sessions
	m.sessions = make(map[string]*memoryEntry)
	m.mu.Unlock()

	for _, e := range entries {
		e.mu.Lock()
		e.session.Close()
		e.session = nil
		e.mu.Unlock()
	}
}
