// Package tokenfile persists the bearer token in a single local file,
// the restart-surviving analog of browser local storage.
package tokenfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/volunteerhub/webclient/internal/session"
)

// Store is a file-based token store. The token is opaque; the file holds it
// verbatim with a trailing newline and 0600 permissions.
type Store struct {
	path string
}

// New creates a file token store at the given path. An empty path resolves to
// "volunteerhub/token" under the user config directory.
func New(path string) (*Store, error) {
	if path == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve user config dir: %w", err)
		}
		path = filepath.Join(base, "volunteerhub", "token")
	}
	return &Store{path: path}, nil
}

// Path returns the token file location.
func (s *Store) Path() string { return s.path }

func (s *Store) Load(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", session.ErrNoToken
		}
		return "", fmt.Errorf("read token file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", session.ErrNoToken
	}
	return token, nil
}

func (s *Store) Save(_ context.Context, token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	// Write-then-rename so a crash mid-write never leaves a truncated token.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}

func (s *Store) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
