package settings

import (
	"errors"
	"os"
	"sync"
)

// StorageKey identifies the persisted settings document across backends.
// The suffix versions the document shape.
const StorageKey = "bizdash:settings:v1"

// ErrNotPersisted is returned by Load when no document has been saved yet
var ErrNotPersisted = errors.New("settings: nothing persisted")

// Storage persists the serialized settings document
type Storage interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// MemoryStorage keeps the document in process memory. Used by tests and
// sessions that opt out of persistence.
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStorage creates an empty in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, ErrNotPersisted
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

func (s *MemoryStorage) Save(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make([]byte, len(data))
	copy(s.data, data)
	return nil
}

// FileStorage persists the document as a JSON file
type FileStorage struct {
	path string
}

// NewFileStorage creates a file-backed storage at path
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (s *FileStorage) Load() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ErrNotPersisted
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *FileStorage) Save(data []byte) error {
	return os.WriteFile(s.path, data, 0o600)
}

// Ensure implementations satisfy Storage
var (
	_ Storage = (*MemoryStorage)(nil)
	_ Storage = (*FileStorage)(nil)
)
