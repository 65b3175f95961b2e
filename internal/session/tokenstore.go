package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// TokenStore persists the bearer token between runs. An empty string
// from Load means "no token", i.e. logged out.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// tokenFileName is the fixed storage key: a single file holding the
// opaque token string.
const tokenFileName = "token"

// FileTokenStore keeps the token in a file, created with user-only
// permissions. There is never more than one writer (login/logout are
// synchronous user actions), so no file locking is needed.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore stores the token at path. An empty path picks
// <user config dir>/coffee-shop/token.
func NewFileTokenStore(path string) (*FileTokenStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "coffee-shop", tokenFileName)
	}
	return &FileTokenStore{path: path}, nil
}

func (s *FileTokenStore) Load() (string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *FileTokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
