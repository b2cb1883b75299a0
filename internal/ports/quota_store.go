package ports

import (
	"context"

	"github.com/bnema/gptbridge/internal/domain"
)

// QuotaStore persists the full principal → remaining-quota mapping.
type QuotaStore interface {
	Load(ctx context.Context) (map[domain.PrincipalID]int64, error)
	Save(ctx context.Context, quotas map[domain.PrincipalID]int64) error
}
