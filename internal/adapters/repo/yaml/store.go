// Package yaml stores quotas and sessions in one versioned YAML document.
package yaml

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/gptbridge/internal/adapters/repo/atomicfile"
	"github.com/bnema/gptbridge/internal/domain"
	"github.com/bnema/gptbridge/internal/ports"
	yaml "gopkg.in/yaml.v3"
)

const (
	StateFile            = "state.yaml"
	currentSchemaVersion = 1
	tempFilePattern      = ".state-*.yaml.tmp"
)

type document struct {
	Version  int                  `yaml:"version"`
	Quotas   map[string]int64     `yaml:"quotas"`
	Sessions map[string]time.Time `yaml:"sessions"`
}

type Store struct {
	path string
	mu   *sync.RWMutex
}

type QuotaStore struct {
	store *Store
}

type SessionStore struct {
	store *Store
}

var (
	_ ports.QuotaStore   = QuotaStore{}
	_ ports.SessionStore = SessionStore{}
)

func NewStore(dir string) (*Store, error) {
	path, err := atomicfile.NormalizePath(filepath.Join(dir, StateFile))
	if err != nil {
		return nil, err
	}

	return &Store{path: path, mu: atomicfile.LockForPath(path)}, nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Quotas() QuotaStore {
	return QuotaStore{store: s}
}

func (s *Store) Sessions() SessionStore {
	return SessionStore{store: s}
}

func (q QuotaStore) Load(ctx context.Context) (map[domain.PrincipalID]int64, error) {
	doc, err := q.store.read(ctx)
	if err != nil {
		return nil, err
	}

	quotas := make(map[domain.PrincipalID]int64, len(doc.Quotas))
	for principal, value := range doc.Quotas {
		quotas[domain.PrincipalID(principal)] = value
	}
	return quotas, nil
}

func (q QuotaStore) Save(ctx context.Context, quotas map[domain.PrincipalID]int64) error {
	return q.store.update(ctx, func(doc *document) {
		doc.Quotas = make(map[string]int64, len(quotas))
		for principal, value := range quotas {
			doc.Quotas[string(principal)] = value
		}
	})
}

func (s SessionStore) Load(ctx context.Context) (map[domain.SessionID]time.Time, error) {
	doc, err := s.store.read(ctx)
	if err != nil {
		return nil, err
	}

	sessions := make(map[domain.SessionID]time.Time, len(doc.Sessions))
	for id, lastActivity := range doc.Sessions {
		sessions[domain.SessionID(id)] = lastActivity
	}
	return sessions, nil
}

func (s SessionStore) Save(ctx context.Context, sessions map[domain.SessionID]time.Time) error {
	return s.store.update(ctx, func(doc *document) {
		doc.Sessions = make(map[string]time.Time, len(sessions))
		for id, lastActivity := range sessions {
			doc.Sessions[string(id)] = lastActivity.UTC()
		}
	})
}

func (s *Store) read(ctx context.Context) (document, error) {
	if err := ctx.Err(); err != nil {
		return document{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.decode()
}

func (s *Store) update(ctx context.Context, mutate func(*document)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.decode()
	if err != nil {
		return err
	}
	mutate(&doc)

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}

	return atomicfile.WriteFile(s.path, data, tempFilePattern)
}

func (s *Store) decode() (document, error) {
	data, err := atomicfile.ReadFile(s.path)
	if err != nil {
		return document{}, err
	}

	var doc document
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return document{}, fmt.Errorf("decode state file: %w", err)
		}
	}
	if doc.Version > currentSchemaVersion {
		return document{}, fmt.Errorf("unsupported state schema version %d (current %d)", doc.Version, currentSchemaVersion)
	}
	if doc.Version == 0 {
		doc.Version = currentSchemaVersion
	}
	if doc.Quotas == nil {
		doc.Quotas = map[string]int64{}
	}
	if doc.Sessions == nil {
		doc.Sessions = map[string]time.Time{}
	}

	return doc, nil
}
