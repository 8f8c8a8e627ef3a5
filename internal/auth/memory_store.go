package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	data      refreshTokenData
	expiresAt time.Time
}

// MemoryTokenStore keeps tokens in process memory. It serves single-instance
// deployments that run without redis.
type MemoryTokenStore struct {
	mu        sync.Mutex
	refresh   map[string]memoryEntry
	blacklist map[string]time.Time
	now       func() time.Time
}

var _ TokenStoreInterface = (*MemoryTokenStore)(nil)

// NewMemoryTokenStore creates an empty in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{
		refresh:   make(map[string]memoryEntry),
		blacklist: make(map[string]time.Time),
		now:       time.Now,
	}
}

func (s *MemoryTokenStore) StoreRefreshToken(_ context.Context, tokenID string, userID uuid.UUID, email string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purge()
	s.refresh[tokenID] = memoryEntry{
		data:      refreshTokenData{UserID: userID, Email: email},
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *MemoryTokenStore) GetRefreshToken(_ context.Context, tokenID string) (uuid.UUID, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.refresh[tokenID]
	if !ok || !s.now().Before(e.expiresAt) {
		return uuid.Nil, "", ErrRefreshTokenNotFound
	}
	return e.data.UserID, e.data.Email, nil
}

func (s *MemoryTokenStore) DeleteRefreshToken(_ context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.refresh, tokenID)
	return nil
}

func (s *MemoryTokenStore) BlacklistAccessToken(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blacklist[tokenID] = s.now().Add(ttl)
	return nil
}

func (s *MemoryTokenStore) IsAccessTokenBlacklisted(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.blacklist[tokenID]
	return ok && s.now().Before(until), nil
}

// purge drops expired entries. Callers hold mu.
func (s *MemoryTokenStore) purge() {
	now := s.now()
	for id, e := range s.refresh {
		if !now.Before(e.expiresAt) {
			delete(s.refresh, id)
		}
	}
	for id, until := range s.blacklist {
		if !now.Before(until) {
			delete(s.blacklist, id)
		}
	}
}
