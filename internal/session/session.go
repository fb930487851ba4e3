// Package session holds the per-conversation state the engine operates on:
// conversation history, the session's catalog, the draft item list and the
// current quotation. Nothing here is process-wide; every core call receives
// the session it works on, so concurrent sessions just mean more sessions.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/construinmuniza/cotizador/internal/catalog"
	"github.com/construinmuniza/cotizador/internal/quote"
	"github.com/construinmuniza/cotizador/report"
)

// ErrNotFound indicates an unknown session ID.
var ErrNotFound = errors.New("session: not found")

// Producer tags who emitted an utterance.
type Producer string

const (
	ProducerUser  Producer = "user"
	ProducerAgent Producer = "agent"
)

// Utterance is one immutable entry in the conversation history.
type Utterance struct {
	Producer Producer `json:"producer"`
	Text     string   `json:"text"`
}

// Session is one conversation's working state.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu         sync.Mutex
	history    []Utterance
	store      *catalog.Store
	draft      []quote.LineItem
	letterhead report.Letterhead
	current    *quote.Quotation
}

func newSession() *Session {
	return &Session{
		ID:         uuid.New(),
		CreatedAt:  time.Now(),
		store:      catalog.NewStore(),
		letterhead: report.DefaultLetterhead(),
	}
}

// Catalog returns the session's catalog store.
func (s *Session) Catalog() *catalog.Store {
	return s.store
}

// Append records an utterance. History is append-only.
func (s *Session) Append(u Utterance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, u)
}

// History returns a copy of the conversation so far.
func (s *Session) History() []Utterance {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Utterance, len(s.history))
	copy(out, s.history)
	return out
}

// AddItem appends a line item to the draft list, preserving selection order.
func (s *Session) AddItem(item quote.LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = append(s.draft, item)
}

// RemoveItem drops the draft item at index.
func (s *Session) RemoveItem(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.draft) {
		return errors.New("session: item index out of range")
	}
	s.draft = append(s.draft[:index], s.draft[index+1:]...)
	return nil
}

// Items returns a copy of the draft item list.
func (s *Session) Items() []quote.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]quote.LineItem, len(s.draft))
	copy(out, s.draft)
	return out
}

// ClearItems empties the draft list (new quotation flow).
func (s *Session) ClearItems() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = nil
}

// SetQuotation stores the generated quotation as the session's current one.
func (s *Session) SetQuotation(q quote.Quotation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &q
}

// Quotation returns the current quotation, if one has been generated.
func (s *Session) Quotation() (quote.Quotation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return quote.Quotation{}, false
	}
	return *s.current, true
}

// SetLetterhead replaces the company data used for rendering.
func (s *Session) SetLetterhead(lh report.Letterhead) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.letterhead = lh
}

// Letterhead returns the company data used for rendering.
func (s *Session) Letterhead() report.Letterhead {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.letterhead
}

// Manager tracks open sessions by ID.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewManager returns an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[uuid.UUID]*Session)}
}

// Open creates and registers a fresh session.
func (m *Manager) Open() *Session {
	s := newSession()
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get looks up a session by ID.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Close removes a session.
func (m *Manager) Close(id uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
