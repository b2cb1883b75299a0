package application

import (
	"sort"
	"time"

	"github.com/bnema/gptbridge/internal/domain"
)

type PrincipalStatus struct {
	Principal domain.PrincipalID `json:"principal"`
	State     string             `json:"state"`
	Remaining int64              `json:"remaining"`
}

type SessionStatus struct {
	ID           domain.SessionID `json:"id"`
	LastActivity time.Time        `json:"last_activity"`
	Idle         time.Duration    `json:"idle_ns"`
	ExpiresAt    time.Time        `json:"expires_at"`
	Expired      bool             `json:"expired"`
}

// Status is a point-in-time view of the ledger and the session registry for operators.
type Status struct {
	GeneratedAt time.Time         `json:"generated_at"`
	MaxIdle     time.Duration     `json:"max_idle_ns"`
	Principals  []PrincipalStatus `json:"principals"`
	Sessions    []SessionStatus   `json:"sessions"`
}

func BuildStatus(ledger *AccessLedger, registry *SessionRegistry, now time.Time, maxIdle time.Duration) Status {
	if maxIdle <= 0 {
		maxIdle = DefaultSessionMaxIdle
	}

	status := Status{
		GeneratedAt: now,
		MaxIdle:     maxIdle,
		Principals:  make([]PrincipalStatus, 0),
		Sessions:    make([]SessionStatus, 0),
	}

	if ledger != nil {
		for principal, value := range ledger.Snapshot() {
			quota := domain.LookupQuota(value, true)
			status.Principals = append(status.Principals, PrincipalStatus{
				Principal: principal,
				State:     quota.State.String(),
				Remaining: quota.Stored(),
			})
		}
		sort.Slice(status.Principals, func(i, j int) bool {
			return status.Principals[i].Principal < status.Principals[j].Principal
		})
	}

	if registry != nil {
		for _, session := range registry.All() {
			status.Sessions = append(status.Sessions, SessionStatus{
				ID:           session.ID,
				LastActivity: session.LastActivity,
				Idle:         now.Sub(session.LastActivity),
				ExpiresAt:    session.LastActivity.Add(maxIdle),
				Expired:      session.IsExpired(now, maxIdle),
			})
		}
	}

	return status
}
