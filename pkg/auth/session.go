package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoSession is returned by SessionFile.Load when nobody is logged in.
var ErrNoSession = errors.New("auth: not logged in")

// SessionFile keeps the current session token on disk between CLI runs.
type SessionFile struct {
	path string
}

func NewSessionFile(path string) *SessionFile {
	return &SessionFile{path: path}
}

func (s *SessionFile) Path() string { return s.path }

// Save writes token, readable by the current user only.
func (s *SessionFile) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("auth: session dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("auth: write session: %w", err)
	}
	return nil
}

// Load returns the stored token or ErrNoSession.
func (s *SessionFile) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("auth: read session: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoSession
	}
	return token, nil
}

// Clear removes the session. Clearing a missing session is not an error.
func (s *SessionFile) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("auth: remove session: %w", err)
	}
	return nil
}
