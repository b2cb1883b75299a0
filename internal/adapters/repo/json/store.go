// Package json keeps quotas and sessions in the flat JSON files the bot has always used:
// an object of principal id to integer, and an object of session id to RFC 3339 timestamp.
package json

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/gptbridge/internal/adapters/repo/atomicfile"
	"github.com/bnema/gptbridge/internal/domain"
	"github.com/bnema/gptbridge/internal/ports"
)

const (
	QuotasFile   = "quotas.json"
	SessionsFile = "sessions.json"
	tempPattern  = ".gptbridge-*.json.tmp"
)

type QuotaStore struct {
	path string
	mu   *sync.RWMutex
}

type SessionStore struct {
	path string
	mu   *sync.RWMutex
}

var (
	_ ports.QuotaStore   = (*QuotaStore)(nil)
	_ ports.SessionStore = (*SessionStore)(nil)
)

func NewQuotaStore(dir string) (*QuotaStore, error) {
	path, err := atomicfile.NormalizePath(filepath.Join(dir, QuotasFile))
	if err != nil {
		return nil, err
	}

	return &QuotaStore{path: path, mu: atomicfile.LockForPath(path)}, nil
}

func NewSessionStore(dir string) (*SessionStore, error) {
	path, err := atomicfile.NormalizePath(filepath.Join(dir, SessionsFile))
	if err != nil {
		return nil, err
	}

	return &SessionStore{path: path, mu: atomicfile.LockForPath(path)}, nil
}

func (s *QuotaStore) Path() string {
	return s.path
}

func (s *QuotaStore) Load(ctx context.Context) (map[domain.PrincipalID]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := atomicfile.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	quotas := map[domain.PrincipalID]int64{}
	if len(data) == 0 {
		return quotas, nil
	}
	if err := json.Unmarshal(data, &quotas); err != nil {
		return nil, fmt.Errorf("decode quotas file: %w", err)
	}

	return quotas, nil
}

func (s *QuotaStore) Save(ctx context.Context, quotas map[domain.PrincipalID]int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if quotas == nil {
		quotas = map[domain.PrincipalID]int64{}
	}
	data, err := json.MarshalIndent(quotas, "", "  ")
	if err != nil {
		return fmt.Errorf("encode quotas file: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return atomicfile.WriteFile(s.path, data, tempPattern)
}

func (s *SessionStore) Path() string {
	return s.path
}

func (s *SessionStore) Load(ctx context.Context) (map[domain.SessionID]time.Time, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := atomicfile.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	sessions := map[domain.SessionID]time.Time{}
	if len(data) == 0 {
		return sessions, nil
	}

	var raw map[domain.SessionID]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode sessions file: %w", err)
	}

	for id, value := range raw {
		parsed, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, fmt.Errorf("decode session %s timestamp: %w", id, err)
		}
		sessions[id] = parsed
	}

	return sessions, nil
}

func (s *SessionStore) Save(ctx context.Context, sessions map[domain.SessionID]time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw := make(map[domain.SessionID]string, len(sessions))
	for id, lastActivity := range sessions {
		raw[id] = lastActivity.UTC().Format(time.RFC3339Nano)
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("encode sessions file: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return atomicfile.WriteFile(s.path, data, tempPattern)
}
