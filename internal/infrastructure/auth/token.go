// Package auth supplies bearer tokens to the HTTP gateway and introspects
// their claims for the UI layer. The dashboard never verifies signatures;
// the backend does that. Introspection only surfaces what the token says.
package auth

import (
	"errors"
	"os"
	"strings"
	"sync"
)

// ErrNoToken is returned when a token source has nothing to offer
var ErrNoToken = errors.New("auth: no token available")

// TokenSource yields the bearer token attached to outgoing live requests
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a fixed token, typically from configuration
type StaticToken string

func (t StaticToken) Token() (string, error) {
	if t == "" {
		return "", ErrNoToken
	}
	return string(t), nil
}

// FileTokenStore reads the token from a file and caches it; Refresh
// re-reads after an external rotation.
type FileTokenStore struct {
	path string

	mu     sync.RWMutex
	cached string
}

// NewFileTokenStore creates a token store over the given file
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Token() (string, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != "" {
		return cached, nil
	}
	return s.Refresh()
}

// Refresh re-reads the token file
func (s *FileTokenStore) Refresh() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	s.mu.Lock()
	s.cached = token
	s.mu.Unlock()
	return token, nil
}

// Bearer adapts a TokenSource to the string-only shape the HTTP gateway
// consumes. Errors degrade to an empty token, which the gateway treats as
// "send no Authorization header".
type Bearer struct {
	Source TokenSource
}

func (b Bearer) Token() string {
	token, err := b.Source.Token()
	if err != nil {
		return ""
	}
	return token
}

// Ensure implementations satisfy TokenSource
var (
	_ TokenSource = StaticToken("")
	_ TokenSource = (*FileTokenStore)(nil)
)
