package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"hijabstore/internal/model"
)

// Session is what the client remembers about the signed-in user. The password
// is never part of it.
type Session struct {
	ID     uint   `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	APIKey string `json:"apiKey"`
}

// NewSession builds a Session from a login result.
func NewSession(u *model.User) Session {
	return Session{ID: u.ID, Email: u.Email, Role: u.Role, APIKey: u.APIKey}
}

// IsAdmin reports whether the session may use the admin operations.
func (s Session) IsAdmin() bool {
	return s.Role == model.RoleAdmin
}

// SessionStore persists a Session across restarts.
type SessionStore interface {
	// Load returns the saved session, or nil when there is none.
	Load() (*Session, error)
	Save(s Session) error
	Clear() error
}

// FileSessionStore keeps the session as a JSON file.
type FileSessionStore struct {
	path string
}

// NewFileSessionStore returns a store writing to path.
func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

// DefaultSessionPath is ~/.hijabstore/session.json, or a relative path when
// the home directory is unknown.
func DefaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".hijabstore", "session.json")
	}
	return filepath.Join(home, ".hijabstore", "session.json")
}

func (f *FileSessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

func (f *FileSessionStore) Save(s Session) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (f *FileSessionStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// MemorySessionStore keeps the session in memory only.
type MemorySessionStore struct {
	mu sync.Mutex
	s  *Session
}

func (m *MemorySessionStore) Load() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.s == nil {
		return nil, nil
	}
	cp := *m.s
	return &cp, nil
}

func (m *MemorySessionStore) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = &s
	return nil
}

func (m *MemorySessionStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = nil
	return nil
}
