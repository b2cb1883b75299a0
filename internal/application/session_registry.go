package application

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/bnema/gptbridge/internal/domain"
	"github.com/bnema/gptbridge/internal/ports"
	"go.uber.org/zap"
)

// SessionRegistry owns the active session table and its store.
type SessionRegistry struct {
	store  ports.SessionStore
	logger *zap.Logger

	keys      keyedMutex
	mu        sync.RWMutex
	sessions  map[domain.SessionID]time.Time
	persistMu sync.Mutex
}

func NewSessionRegistry(ctx context.Context, store ports.SessionStore, logger *zap.Logger) (*SessionRegistry, error) {
	if store == nil {
		return nil, errors.New("session store is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sessions, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session store: %w", err)
	}
	if sessions == nil {
		sessions = map[domain.SessionID]time.Time{}
	}

	return &SessionRegistry{
		store:    store,
		logger:   logger.With(zap.String("component", "session_registry")),
		sessions: sessions,
	}, nil
}

// Create inserts or overwrites the session with LastActivity = now and persists it.
func (r *SessionRegistry) Create(ctx context.Context, id domain.SessionID, now time.Time) error {
	if !id.Valid() {
		return errors.New("session id is required")
	}

	unlock := r.keys.Lock(string(id))
	defer unlock()

	r.mu.Lock()
	previous, existed := r.sessions[id]
	r.sessions[id] = now
	r.mu.Unlock()

	if err := r.persist(ctx); err != nil {
		r.mu.Lock()
		if existed {
			r.sessions[id] = previous
		} else {
			delete(r.sessions, id)
		}
		r.mu.Unlock()
		return fmt.Errorf("persist session %s: %w", id, err)
	}

	r.logger.Debug("session created", zap.String("session_id", string(id)), zap.Time("last_activity", now))
	return nil
}

// Remove deletes the session and reports whether it existed.
func (r *SessionRegistry) Remove(ctx context.Context, id domain.SessionID) (bool, error) {
	unlock := r.keys.Lock(string(id))
	defer unlock()

	r.mu.Lock()
	previous, existed := r.sessions[id]
	if !existed {
		r.mu.Unlock()
		return false, nil
	}
	delete(r.sessions, id)
	r.mu.Unlock()

	if err := r.persist(ctx); err != nil {
		r.mu.Lock()
		r.sessions[id] = previous
		r.mu.Unlock()
		return false, fmt.Errorf("persist removal of session %s: %w", id, err)
	}

	r.logger.Debug("session removed", zap.String("session_id", string(id)))
	return true, nil
}

func (r *SessionRegistry) Contains(id domain.SessionID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.sessions[id]
	return ok
}

func (r *SessionRegistry) Get(id domain.SessionID) (domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lastActivity, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}

	return domain.Session{ID: id, LastActivity: lastActivity}, nil
}

// All returns every session ordered by id.
func (r *SessionRegistry) All() []domain.Session {
	r.mu.RLock()
	sessions := make([]domain.Session, 0, len(r.sessions))
	for id, lastActivity := range r.sessions {
		sessions = append(sessions, domain.Session{ID: id, LastActivity: lastActivity})
	}
	r.mu.RUnlock()

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ID < sessions[j].ID
	})

	return sessions
}

func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

func (r *SessionRegistry) persist(ctx context.Context) error {
	r.persistMu.Lock()
	defer r.persistMu.Unlock()

	r.mu.RLock()
	snapshot := maps.Clone(r.sessions)
	r.mu.RUnlock()

	if err := r.store.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("save session store: %w", err)
	}

	return nil
}
