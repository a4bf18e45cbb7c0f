package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// SessionStore persists the bearer token between requests.
type SessionStore interface {
	Get() (string, error)
	Set(token string) error
	Clear() error
}

// Navigator sends the user somewhere else, typically back to the entry page
// after the session has ended.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// MemorySession keeps the token in process memory.
type MemorySession struct {
	mu    sync.RWMutex
	token string
}

func (s *MemorySession) Get() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *MemorySession) Set(token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *MemorySession) Clear() error {
	return s.Set("")
}

// FileSession stores the token as a JSON file readable only by the owner.
type FileSession struct {
	mu   sync.RWMutex
	path string
}

type sessionFile struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"savedAt"`
}

// NewFileSession stores the session at path. An empty path defaults to
// ~/.config/resume-builder/session.json.
func NewFileSession(path string) (*FileSession, error) {
	if strings.TrimSpace(path) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		path = filepath.Join(home, ".config", "resume-builder", "session.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileSession{path: path}, nil
}

// Path returns the session file location.
func (s *FileSession) Path() string { return s.path }

func (s *FileSession) Get() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read session file: %w", err)
	}
	var sess sessionFile
	if err := json.Unmarshal(data, &sess); err != nil {
		return "", fmt.Errorf("parse session: %w", err)
	}
	return sess.Token, nil
}

func (s *FileSession) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(sessionFile{Token: token, SavedAt: time.Now().UTC()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

func (s *FileSession) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
