// Package auth contains simple hand-written test doubles for the session and transcript ports.
// They are lightweight and suitable for unit tests without codegen.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	domainassistant "github.com/techmidia/painel/internal/domain/assistant"
	domainauth "github.com/techmidia/painel/internal/domain/auth"
	"github.com/techmidia/painel/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionStore    = (*MemorySessionStore)(nil)
	_ ports.SessionAdmin    = (*MemorySessionStore)(nil)
	_ ports.TranscriptStore = (*MemoryTranscriptStore)(nil)
)

// ErrNotFound mirrors the store sentinel.
var ErrNotFound = ports.ErrSessionNotFound

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
	// SaveErr, when set, is returned by Save.
	SaveErr error
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok || id == "" {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemorySessionStore) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions), nil
}

func (m *MemorySessionStore) Purge(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.sessions)
	m.sessions = make(map[string]domainauth.Session)
	return n, nil
}

// MemoryTranscriptStore keeps transcripts in a map.
type MemoryTranscriptStore struct {
	mu      sync.Mutex
	entries map[string][]domainassistant.Entry
}

// NewMemoryTranscriptStore creates an empty transcript store.
func NewMemoryTranscriptStore() *MemoryTranscriptStore {
	return &MemoryTranscriptStore{entries: make(map[string][]domainassistant.Entry)}
}

func (m *MemoryTranscriptStore) Append(
	_ context.Context,
	sessionID string,
	_ time.Duration,
	entries ...domainassistant.Entry,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[sessionID] = append(m.entries[sessionID], entries...)
	return nil
}

func (m *MemoryTranscriptStore) List(_ context.Context, sessionID string) ([]domainassistant.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domainassistant.Entry(nil), m.entries[sessionID]...), nil
}

func (m *MemoryTranscriptStore) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, sessionID)
	return nil
}
