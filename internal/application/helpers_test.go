package application

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/bnema/gptbridge/internal/domain"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type memoryQuotaStore struct {
	mu      sync.Mutex
	quotas  map[domain.PrincipalID]int64
	saves   int
	saveErr error
}

func newMemoryQuotaStore(quotas map[domain.PrincipalID]int64) *memoryQuotaStore {
	return &memoryQuotaStore{quotas: maps.Clone(quotas)}
}

func (s *memoryQuotaStore) Load(_ context.Context) (map[domain.PrincipalID]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return maps.Clone(s.quotas), nil
}

func (s *memoryQuotaStore) Save(_ context.Context, quotas map[domain.PrincipalID]int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return s.saveErr
	}
	s.quotas = maps.Clone(quotas)
	s.saves++
	return nil
}

func (s *memoryQuotaStore) stored(principal domain.PrincipalID) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.quotas[principal]
	return value, ok
}

type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[domain.SessionID]time.Time
	saves    int
	saveErr  error
}

func newMemorySessionStore(sessions map[domain.SessionID]time.Time) *memorySessionStore {
	return &memorySessionStore{sessions: maps.Clone(sessions)}
}

func (s *memorySessionStore) Load(_ context.Context) (map[domain.SessionID]time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return maps.Clone(s.sessions), nil
}

func (s *memorySessionStore) Save(_ context.Context, sessions map[domain.SessionID]time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return s.saveErr
	}
	s.sessions = maps.Clone(sessions)
	s.saves++
	return nil
}

func (s *memorySessionStore) snapshot() map[domain.SessionID]time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return maps.Clone(s.sessions)
}

func mustParseTime(raw string) time.Time {
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		panic(err)
	}
	return parsed
}

func noSleep(_ context.Context, _ time.Duration) error {
	return nil
}
