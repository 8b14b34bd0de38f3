package session

import (
	"context"
	"encoding/json"
	"sync"

	"salonadmin/internal/models"
)

// MemoryStore holds the session in process memory. Used standalone in tests
// and as the fallback behind a Redis primary.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

func (m *MemoryStore) Load(ctx context.Context) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	access := m.entries[KeyAccessToken]
	refresh := m.entries[KeyRefreshToken]
	if access == "" || refresh == "" {
		return nil, nil
	}

	s := &Session{AccessToken: access, RefreshToken: refresh}
	if raw := m.entries[KeyUser]; raw != "" {
		var user models.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return nil, err
		}
		s.User = &user
	}
	return s, nil
}

func (m *MemoryStore) Save(ctx context.Context, s *Session) error {
	if err := s.validate(); err != nil {
		return err
	}

	userData, err := json.Marshal(s.User)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[KeyAccessToken] = s.AccessToken
	m.entries[KeyRefreshToken] = s.RefreshToken
	m.entries[KeyUser] = string(userData)
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, KeyAccessToken)
	delete(m.entries, KeyRefreshToken)
	delete(m.entries, KeyUser)
	return nil
}

// Get exposes a raw entry for tests asserting on individual storage keys.
func (m *MemoryStore) Get(name string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entries[name]
}
