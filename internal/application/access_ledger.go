package application

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/bnema/gptbridge/internal/domain"
	"github.com/bnema/gptbridge/internal/ports"
	"go.uber.org/zap"
)

type AdmissionOutcome string

const (
	AdmissionAllowed         AdmissionOutcome = "allowed"
	AdmissionDeniedNoEntry   AdmissionOutcome = "denied_no_entry"
	AdmissionDeniedExhausted AdmissionOutcome = "denied_exhausted"
	AdmissionFailed          AdmissionOutcome = "failed"
)

type Decision struct {
	Outcome AdmissionOutcome
	// Quota is the principal's quota after the decision was applied.
	Quota domain.Quota
}

func (d Decision) Allowed() bool {
	return d.Outcome == AdmissionAllowed
}

// Err maps a denial to its domain error, nil when allowed.
func (d Decision) Err() error {
	switch d.Outcome {
	case AdmissionAllowed:
		return nil
	case AdmissionDeniedExhausted:
		return domain.ErrQuotaExhausted
	default:
		return domain.ErrAccessDenied
	}
}

// AccessLedger owns the principal quota table and its store.
type AccessLedger struct {
	store  ports.QuotaStore
	logger *zap.Logger

	keys      keyedMutex
	mu        sync.RWMutex
	quotas    map[domain.PrincipalID]int64
	persistMu sync.Mutex
}

func NewAccessLedger(ctx context.Context, store ports.QuotaStore, logger *zap.Logger) (*AccessLedger, error) {
	if store == nil {
		return nil, errors.New("quota store is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	quotas, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load quota store: %w", err)
	}
	if quotas == nil {
		quotas = map[domain.PrincipalID]int64{}
	}

	return &AccessLedger{
		store:  store,
		logger: logger.With(zap.String("component", "access_ledger")),
		quotas: quotas,
	}, nil
}

func (l *AccessLedger) Lookup(principal domain.PrincipalID) domain.Quota {
	l.mu.RLock()
	defer l.mu.RUnlock()

	value, ok := l.quotas[principal]
	return domain.LookupQuota(value, ok)
}

// CheckAndConsume admits the principal and, when allowed, persists the decremented quota before returning.
func (l *AccessLedger) CheckAndConsume(ctx context.Context, principal domain.PrincipalID) (Decision, error) {
	unlock := l.keys.Lock(string(principal))
	defer unlock()

	current := l.Lookup(principal)
	switch current.State {
	case domain.QuotaNoAccess:
		return Decision{Outcome: AdmissionDeniedNoEntry, Quota: current}, nil
	case domain.QuotaExhausted:
		return Decision{Outcome: AdmissionDeniedExhausted, Quota: current}, nil
	}

	next, _ := current.Consume()
	if next.State == domain.QuotaUnlimited {
		return Decision{Outcome: AdmissionAllowed, Quota: next}, nil
	}

	l.set(principal, next.Stored())
	if err := l.persist(ctx); err != nil {
		l.set(principal, current.Stored())
		return Decision{Outcome: AdmissionFailed, Quota: current}, fmt.Errorf("persist quota for %s: %w", principal, err)
	}

	l.logger.Debug("quota consumed",
		zap.String("principal", string(principal)),
		zap.Int64("remaining", next.Stored()),
	)

	return Decision{Outcome: AdmissionAllowed, Quota: next}, nil
}

// Grant provisions a principal's counter. Negative values store the unlimited sentinel.
func (l *AccessLedger) Grant(ctx context.Context, principal domain.PrincipalID, value int64) error {
	if principal == "" {
		return errors.New("principal is required")
	}
	if value < 0 {
		value = domain.UnlimitedQuota
	}

	unlock := l.keys.Lock(string(principal))
	defer unlock()

	l.mu.RLock()
	previous, existed := l.quotas[principal]
	l.mu.RUnlock()

	l.set(principal, value)
	if err := l.persist(ctx); err != nil {
		l.mu.Lock()
		if existed {
			l.quotas[principal] = previous
		} else {
			delete(l.quotas, principal)
		}
		l.mu.Unlock()
		return fmt.Errorf("persist quota grant for %s: %w", principal, err)
	}

	return nil
}

func (l *AccessLedger) Snapshot() map[domain.PrincipalID]int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return maps.Clone(l.quotas)
}

func (l *AccessLedger) set(principal domain.PrincipalID, value int64) {
	l.mu.Lock()
	l.quotas[principal] = value
	l.mu.Unlock()
}

// persist writes the whole table. The snapshot is taken under persistMu so the last write is the newest state.
func (l *AccessLedger) persist(ctx context.Context) error {
	l.persistMu.Lock()
	defer l.persistMu.Unlock()

	if err := l.store.Save(ctx, l.Snapshot()); err != nil {
		return fmt.Errorf("save quota store: %w", err)
	}

	return nil
}
