package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// TokenKey is the storage key the bearer token is persisted under.
const TokenKey = "nutricart_token"

// TokenStore persists the bearer token in a small YAML key/value file, the
// command line counterpart of browser local storage. Other keys in the file
// are preserved.
type TokenStore struct {
	path string

	mu     sync.Mutex
	loaded bool
	values map[string]string
}

func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

func (s *TokenStore) load() error {
	if s.loaded {
		return nil
	}

	s.values = map[string]string{}

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading token store: %w", err)
	}

	if err := yaml.Unmarshal(raw, &s.values); err != nil {
		return fmt.Errorf("parsing token store %s: %w", s.path, err)
	}

	if s.values == nil {
		s.values = map[string]string{}
	}
	s.loaded = true

	return nil
}

func (s *TokenStore) save() error {
	raw, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("encoding token store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating token store dir: %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("writing token store: %w", err)
	}

	return nil
}

// Token implements storefront.TokenSource. An unreadable store reads as
// signed out.
func (s *TokenStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return "", false
	}

	token := s.values[TokenKey]

	return token, token != ""
}

func (s *TokenStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}

	s.values[TokenKey] = token

	return s.save()
}

func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}

	if _, ok := s.values[TokenKey]; !ok {
		return nil
	}

	delete(s.values, TokenKey)

	return s.save()
}
