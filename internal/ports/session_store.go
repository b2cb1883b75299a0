package ports

import (
	"context"
	"time"

	"github.com/bnema/gptbridge/internal/domain"
)

// SessionStore persists the full session id → last-activity mapping.
type SessionStore interface {
	Load(ctx context.Context) (map[domain.SessionID]time.Time, error)
	Save(ctx context.Context, sessions map[domain.SessionID]time.Time) error
}
