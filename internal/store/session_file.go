package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Session is the locally persisted login state: who is signed in and the
// bearer token to resume with, so the client survives restarts without
// asking for credentials again.
type Session struct {
	UserID  int64     `json:"user_id"`
	Login   string    `json:"login"`
	Token   string    `json:"token"`
	SavedAt time.Time `json:"at"`
}

type sessionFileStore struct {
	path     string
	inMemory bool

	mu      sync.RWMutex
	session *Session
}

type sessionPersistedState struct {
	Session *Session `json:"session,omitempty"`
}

// NewSessionFileStore opens the session file at path, loading a previously
// saved session if one exists. An empty or ":memory:" path keeps the session
// in memory only.
func NewSessionFileStore(path string) (SessionStore, error) {
	inMemory := path == "" || path == ":memory:" || path == "memory"
	s := &sessionFileStore{
		path:     path,
		inMemory: inMemory,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// SaveSession replaces the stored session and writes it through to disk.
func (s *sessionFileStore) SaveSession(session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session.SavedAt.IsZero() {
		session.SavedAt = time.Now()
	}
	s.session = &session

	return s.persist()
}

// LoadSession returns the stored session or [ErrLocalSessionNotFound] when
// nobody has signed in on this machine yet.
func (s *sessionFileStore) LoadSession() (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return Session{}, ErrLocalSessionNotFound
	}

	return *s.session, nil
}

// ClearSession forgets the stored session, both in memory and on disk.
func (s *sessionFileStore) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil

	return s.persist()
}

func (s *sessionFileStore) load() error {
	if s.inMemory {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read session file: %w", err)
	}

	var st sessionPersistedState
	if err = json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("decode session file: %w", err)
	}

	s.session = st.Session

	return nil
}

func (s *sessionFileStore) persist() error {
	if s.inMemory {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}

	state := sessionPersistedState{Session: s.session}
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err = os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	return nil
}
