package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type PrincipalID string

// UnlimitedQuota is the stored value for principals that are never decremented.
// Any negative stored value is read as unlimited.
const UnlimitedQuota int64 = -1

type QuotaState int

const (
	QuotaNoAccess QuotaState = iota
	QuotaExhausted
	QuotaRemaining
	QuotaUnlimited
)

func (s QuotaState) String() string {
	switch s {
	case QuotaNoAccess:
		return "no_access"
	case QuotaExhausted:
		return "exhausted"
	case QuotaRemaining:
		return "remaining"
	case QuotaUnlimited:
		return "unlimited"
	default:
		return fmt.Sprintf("quota_state(%d)", int(s))
	}
}

type Quota struct {
	State     QuotaState
	Remaining int64
}

// LookupQuota is the single place that interprets a stored quota counter.
func LookupQuota(value int64, ok bool) Quota {
	switch {
	case !ok:
		return Quota{State: QuotaNoAccess}
	case value < 0:
		return Quota{State: QuotaUnlimited, Remaining: UnlimitedQuota}
	case value == 0:
		return Quota{State: QuotaExhausted}
	default:
		return Quota{State: QuotaRemaining, Remaining: value}
	}
}

func (q Quota) Allows() bool {
	return q.State == QuotaRemaining || q.State == QuotaUnlimited
}

// Consume returns the quota after one accepted invocation.
func (q Quota) Consume() (Quota, bool) {
	switch q.State {
	case QuotaUnlimited:
		return q, true
	case QuotaRemaining:
		return LookupQuota(q.Remaining-1, true), true
	default:
		return q, false
	}
}

// Stored returns the counter value persisted for this quota.
func (q Quota) Stored() int64 {
	switch q.State {
	case QuotaUnlimited:
		return UnlimitedQuota
	case QuotaRemaining:
		return q.Remaining
	default:
		return 0
	}
}

func (q Quota) String() string {
	switch q.State {
	case QuotaUnlimited:
		return "unlimited"
	case QuotaRemaining:
		return strconv.FormatInt(q.Remaining, 10)
	case QuotaExhausted:
		return "0"
	default:
		return "none"
	}
}

// ParseQuota accepts a non-negative integer or "unlimited".
func ParseQuota(raw string) (int64, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "unlimited" {
		return UnlimitedQuota, nil
	}

	value, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse quota %q: %w", raw, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("quota %d must not be negative (use \"unlimited\")", value)
	}

	return value, nil
}
