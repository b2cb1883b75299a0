package toml

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/gptbridge/internal/adapters/repo/atomicfile"
	"github.com/bnema/gptbridge/internal/domain"
	"github.com/bnema/gptbridge/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	storeDirKey     = "store.dir"
	stateFile       = "state.toml"
	defaultStoreDir = ".config/gptbridge"
	tempFilePattern = ".state-*.toml.tmp"
)

// Repository keeps quotas and sessions as two tables of one versioned TOML file.
type Repository struct {
	statePath string
	mu        *sync.RWMutex
}

type QuotaStore struct {
	repo *Repository
}

type SessionStore struct {
	repo *Repository
}

var (
	_ ports.QuotaStore   = QuotaStore{}
	_ ports.SessionStore = SessionStore{}
)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	if !cfg.IsSet(storeDirKey) {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.SetDefault(storeDirKey, filepath.Join(homeDir, defaultStoreDir))
	}

	statePath, err := atomicfile.NormalizePath(filepath.Join(cfg.GetString(storeDirKey), stateFile))
	if err != nil {
		return nil, err
	}

	return &Repository{statePath: statePath, mu: atomicfile.LockForPath(statePath)}, nil
}

func (r *Repository) Path() string {
	return r.statePath
}

func (r *Repository) Quotas() QuotaStore {
	return QuotaStore{repo: r}
}

func (r *Repository) Sessions() SessionStore {
	return SessionStore{repo: r}
}

func (s QuotaStore) Load(ctx context.Context) (map[domain.PrincipalID]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.repo.mu.RLock()
	defer s.repo.mu.RUnlock()

	file, err := s.repo.readSchema()
	if err != nil {
		return nil, err
	}

	quotas := make(map[domain.PrincipalID]int64, len(file.Quotas))
	for principal, value := range file.Quotas {
		quotas[domain.PrincipalID(principal)] = value
	}

	return quotas, nil
}

func (s QuotaStore) Save(ctx context.Context, quotas map[domain.PrincipalID]int64) error {
	return s.repo.update(ctx, func(file *fileSchema) {
		file.Quotas = make(map[string]int64, len(quotas))
		for principal, value := range quotas {
			file.Quotas[string(principal)] = value
		}
	})
}

func (s SessionStore) Load(ctx context.Context) (map[domain.SessionID]time.Time, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.repo.mu.RLock()
	defer s.repo.mu.RUnlock()

	file, err := s.repo.readSchema()
	if err != nil {
		return nil, err
	}

	sessions := make(map[domain.SessionID]time.Time, len(file.Sessions))
	for id, lastActivity := range file.Sessions {
		sessions[domain.SessionID(id)] = lastActivity
	}

	return sessions, nil
}

func (s SessionStore) Save(ctx context.Context, sessions map[domain.SessionID]time.Time) error {
	return s.repo.update(ctx, func(file *fileSchema) {
		file.Sessions = make(map[string]time.Time, len(sessions))
		for id, lastActivity := range sessions {
			file.Sessions[string(id)] = lastActivity.UTC()
		}
	})
}

// update rewrites one table while keeping the other as it is on disk.
func (r *Repository) update(ctx context.Context, mutate func(*fileSchema)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	mutate(&file)

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := atomicfile.ReadFile(r.statePath)
	if err != nil {
		return fileSchema{}, err
	}

	var file fileSchema
	if len(data) > 0 {
		if err := toml.Unmarshal(data, &file); err != nil {
			return fileSchema{}, fmt.Errorf("decode state file: %w", err)
		}
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}

	if err := atomicfile.WriteFile(r.statePath, data, tempFilePattern); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}
