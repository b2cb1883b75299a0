package application

import (
	"context"
	"errors"
	"time"

	"github.com/bnema/gptbridge/internal/domain"
	"github.com/bnema/gptbridge/internal/ports"
	"go.uber.org/zap"
)

const (
	DefaultSessionMaxIdle = 24 * time.Hour
	DefaultSweepHour      = 3
)

type SweeperConfig struct {
	MaxIdle  time.Duration
	Hour     int
	Location *time.Location
}

type SweepReport struct {
	At             time.Time
	Expired        []domain.SessionID
	NotifyFailures int
	RemoveFailures int
}

// ExpirySweeper closes sessions that have been idle longer than MaxIdle, once a day at a fixed hour.
type ExpirySweeper struct {
	registry *SessionRegistry
	notifier ports.Notifier
	clock    ports.Clock
	cfg      SweeperConfig
	logger   *zap.Logger
	metrics  ports.Metrics
	after    func(time.Duration) <-chan time.Time
}

func NewExpirySweeper(registry *SessionRegistry, notifier ports.Notifier, clock ports.Clock, cfg SweeperConfig, logger *zap.Logger, metrics ports.Metrics) *ExpirySweeper {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if cfg.MaxIdle <= 0 {
		cfg.MaxIdle = DefaultSessionMaxIdle
	}
	if cfg.Hour < 0 || cfg.Hour > 23 {
		cfg.Hour = DefaultSweepHour
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}

	return &ExpirySweeper{
		registry: registry,
		notifier: notifier,
		clock:    clock,
		cfg:      cfg,
		logger:   logger.With(zap.String("component", "expiry_sweeper")),
		metrics:  metrics,
		after:    time.After,
	}
}

// Run sweeps every day at the configured hour until ctx is cancelled.
func (s *ExpirySweeper) Run(ctx context.Context) error {
	for {
		now := s.clock.Now()
		next := NextSweepAt(now, s.cfg.Hour, s.cfg.Location)
		s.logger.Debug("next sweep scheduled", zap.Time("at", next))

		select {
		case <-ctx.Done():
			s.logger.Info("expiry sweeper stopping")
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-s.after(next.Sub(now)):
			s.Sweep(ctx, s.clock.Now())
		}
	}
}

// Sweep notifies and removes every expired session. Failures are isolated per session.
func (s *ExpirySweeper) Sweep(ctx context.Context, now time.Time) SweepReport {
	report := SweepReport{At: now}

	for _, session := range s.registry.All() {
		if !session.IsExpired(now, s.cfg.MaxIdle) {
			continue
		}

		logger := s.logger.With(
			zap.String("session_id", string(session.ID)),
			zap.Time("last_activity", session.LastActivity),
		)

		if err := s.notify(ctx, session.ID); err != nil {
			report.NotifyFailures++
			logger.Warn("session expiry notice failed", zap.Error(err))
		}

		if _, err := s.registry.Remove(ctx, session.ID); err != nil {
			report.RemoveFailures++
			logger.Error("session expiry removal failed", zap.Error(err))
			continue
		}

		report.Expired = append(report.Expired, session.ID)
		logger.Info("session expired")
	}

	s.metrics.ObserveSweep(len(report.Expired), report.NotifyFailures, report.RemoveFailures)
	s.metrics.ObserveSessions(s.registry.Len())

	return report
}

// Expired lists sessions that the next sweep at now would close, without touching them.
func (s *ExpirySweeper) Expired(now time.Time) []domain.Session {
	expired := make([]domain.Session, 0)
	for _, session := range s.registry.All() {
		if session.IsExpired(now, s.cfg.MaxIdle) {
			expired = append(expired, session)
		}
	}
	return expired
}

func (s *ExpirySweeper) notify(ctx context.Context, id domain.SessionID) (err error) {
	if s.notifier == nil {
		return nil
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			err = errors.New("notifier panic")
			s.logger.Error("notifier panicked", zap.Any("panic", recovered))
		}
	}()

	return s.notifier.SendMessage(ctx, string(id), ReplySessionExpired)
}

// NextSweepAt returns the first instant strictly after now at hour:00 in loc.
func NextSweepAt(now time.Time, hour int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}

	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, hour, 0, 0, 0, loc)
	}

	return next
}
