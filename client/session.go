// Package client is the Go consumer of the attendance API: session storage,
// role gating, status derivation and one method per endpoint.
package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type Session struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Store persists the session between runs. A stale token is not detected
// here; the server rejects it on the next call.
type Store interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

// FileStore keeps the session as a JSON file readable only by the owner.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// DefaultSessionPath resolves to ~/.attend/session.json.
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".attend", "session.json"), nil
}

func (f *FileStore) Load() (Session, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		// A corrupt file counts as signed out, not a crash.
		return Session{}, nil
	}
	return s, nil
}

func (f *FileStore) Save(s Session) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, data, 0o600)
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	session Session
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) Load() (Session, error) {
	return m.session, nil
}

func (m *MemStore) Save(s Session) error {
	m.session = s
	return nil
}

func (m *MemStore) Clear() error {
	m.session = Session{}
	return nil
}
