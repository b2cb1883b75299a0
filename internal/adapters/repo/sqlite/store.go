// Package sqlite keeps quotas and sessions in a single SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/gptbridge/internal/adapters/repo/atomicfile"
	"github.com/bnema/gptbridge/internal/domain"
	"github.com/bnema/gptbridge/internal/ports"
	_ "modernc.org/sqlite"
)

const DatabaseFile = "gptbridge.db"

type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
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

func NewStore(ctx context.Context, dir string) (*Store, error) {
	dbPath, err := atomicfile.NormalizePath(filepath.Join(dir, DatabaseFile))
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), atomicfile.DirMode); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db, dbPath: dbPath}
	if err := store.initSchema(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("initialize schema: %w", err), db.Close())
	}

	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) Quotas() QuotaStore {
	return QuotaStore{store: s}
}

func (s *Store) Sessions() SessionStore {
	return SessionStore{store: s}
}

func (s *Store) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS quotas (
		principal_id TEXT PRIMARY KEY,
		remaining INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sessions (
		session_id TEXT PRIMARY KEY,
		last_activity TEXT NOT NULL
	);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return err
	}

	return nil
}

func (q QuotaStore) Load(ctx context.Context) (map[domain.PrincipalID]int64, error) {
	rows, err := q.store.db.QueryContext(ctx, `SELECT principal_id, remaining FROM quotas`)
	if err != nil {
		return nil, fmt.Errorf("query quotas: %w", err)
	}
	defer rows.Close()

	quotas := map[domain.PrincipalID]int64{}
	for rows.Next() {
		var principal string
		var remaining int64
		if err := rows.Scan(&principal, &remaining); err != nil {
			return nil, fmt.Errorf("scan quota row: %w", err)
		}
		quotas[domain.PrincipalID(principal)] = remaining
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotas: %w", err)
	}

	return quotas, nil
}

// Save replaces the whole quotas table in one transaction.
func (q QuotaStore) Save(ctx context.Context, quotas map[domain.PrincipalID]int64) error {
	return q.store.replace(ctx, "quotas", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO quotas (principal_id, remaining) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for principal, remaining := range quotas {
			if _, err := stmt.ExecContext(ctx, string(principal), remaining); err != nil {
				return fmt.Errorf("insert quota %s: %w", principal, err)
			}
		}
		return nil
	})
}

func (s SessionStore) Load(ctx context.Context) (map[domain.SessionID]time.Time, error) {
	rows, err := s.store.db.QueryContext(ctx, `SELECT session_id, last_activity FROM sessions`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := map[domain.SessionID]time.Time{}
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		lastActivity, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("decode session %s timestamp: %w", id, err)
		}
		sessions[domain.SessionID(id)] = lastActivity
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return sessions, nil
}

func (s SessionStore) Save(ctx context.Context, sessions map[domain.SessionID]time.Time) error {
	return s.store.replace(ctx, "sessions", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO sessions (session_id, last_activity) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for id, lastActivity := range sessions {
			if _, err := stmt.ExecContext(ctx, string(id), lastActivity.UTC().Format(time.RFC3339Nano)); err != nil {
				return fmt.Errorf("insert session %s: %w", id, err)
			}
		}
		return nil
	})
}

// replace clears table and refills it with fill inside one transaction.
func (s *Store) replace(ctx context.Context, table string, fill func(*sql.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s transaction: %w", table, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	if err := fill(tx); err != nil {
		return fmt.Errorf("write %s: %w", table, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", table, err)
	}

	return nil
}
