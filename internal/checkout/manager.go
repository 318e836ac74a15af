package checkout

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"ceylontours/internal/models"
)

var (
	ErrSessionNotFound       = errors.New("checkout session not found")
	ErrSessionClosed         = errors.New("checkout session already completed")
	ErrDetailsIncomplete     = errors.New("name, email, phone and travel date are required")
	ErrAdultsRequired        = errors.New("at least one adult is required")
	ErrSelectionIncomplete   = errors.New("guide and hotel must be selected first")
	ErrPaymentMethodRequired = errors.New("payment method is required")
)

// Manager owns the live checkout sessions for this process.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

// Open starts a new session for a package.
func (m *Manager) Open(userID *string, pkg *models.Package) *Session {
	session := newSession(uuid.New().String(), userID, pkg)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return session
}

// Get returns a live session by id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Discard drops a session and all its in-progress form state. Used both
// for explicit cancellation and after successful completion. Reports
// whether a session existed.
func (m *Manager) Discard(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
