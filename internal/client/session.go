package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotLoggedIn is returned when an API call is attempted without a stored
// token. The server would reject the request anyway; checking locally keeps
// the failure mode explicit.
var ErrNotLoggedIn = errors.New("not logged in")

// TokenStore persists the session token between runs. It is the CLI analog
// of the browser's local storage area.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// FileTokenStore keeps the token in a file under the user config directory.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore creates a store at the default location
// (<user config dir>/civreg/token).
func NewFileTokenStore() (*FileTokenStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	return NewFileTokenStoreAt(filepath.Join(dir, "civreg", "token")), nil
}

// NewFileTokenStoreAt creates a store backed by the given file path.
func NewFileTokenStoreAt(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Load returns the stored token, or "" when none is stored.
func (s *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Clear removes the stored token. Clearing an absent token is a no-op.
func (s *FileTokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
